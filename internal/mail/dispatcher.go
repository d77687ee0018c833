package mail

import (
	"context"
	"log"
	"time"
)

// Dispatcher sends notifications off the request path. Failures are
// logged and never retried, an overflowing queue drops the event.
type Dispatcher struct {
	notifier Notifier
	queue    chan Event
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.notifier.Notify(ctx, ev); err != nil {
			log.Printf("mail: %s notification failed: %v", ev.Type, err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("mail queue full, dropping event")
	}
}
