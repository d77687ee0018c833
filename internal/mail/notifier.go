package mail

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	brevo "github.com/getbrevo/brevo-go/lib"

	"github.com/LeCasiNoze/BlackBox/internal/config"
	"github.com/LeCasiNoze/BlackBox/internal/models"
)

// ======================================================
// EVENTS
// ======================================================

type EventType string

const (
	EventBook   EventType = "book"
	EventUpdate EventType = "update"
	EventCancel EventType = "cancel"
)

type Event struct {
	Type   EventType
	Client *models.Client
	Date   string
	Time   *string
}

// Notifier warns the admin mailbox about booking activity.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// ======================================================
// BREVO
// ======================================================

type BrevoNotifier struct {
	api *brevo.APIClient
	cfg *config.Config
}

func NewBrevoNotifier(cfg *config.Config) *BrevoNotifier {
	apiCfg := brevo.NewConfiguration()
	apiCfg.AddDefaultHeader("api-key", cfg.BrevoAPIKey)

	return &BrevoNotifier{
		api: brevo.NewAPIClient(apiCfg),
		cfg: cfg,
	}
}

func (n *BrevoNotifier) Notify(ctx context.Context, ev Event) error {
	if n.cfg.BrevoAPIKey == "" || n.cfg.MailAdminTo == "" {
		// Not configured: skip silently, mail is best effort anyway.
		return nil
	}

	subject, html := buildAdminEmail(n.cfg, ev)

	_, _, err := n.api.TransactionalEmailsApi.SendTransacEmail(ctx, brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  n.cfg.MailFromName,
			Email: n.cfg.MailFromEmail,
		},
		To:          []brevo.SendSmtpEmailTo{{Email: n.cfg.MailAdminTo}},
		Subject:     subject,
		HtmlContent: html,
	})
	return err
}

// ======================================================
// CONTENT (fr)
// ======================================================

func actionLabel(t EventType) string {
	switch t {
	case EventBook:
		return "NOUVEAU rendez-vous réservé"
	case EventUpdate:
		return "Rendez-vous modifié"
	case EventCancel:
		return "Rendez-vous annulé"
	}
	return "Mise à jour de rendez-vous"
}

var frenchLongMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDateFR turns "2025-03-10" into "10 mars 2025". Anything that is
// not YYYY-MM-DD comes back untouched.
func FormatDateFR(date string) string {
	var y, m, d int
	if _, err := fmt.Sscanf(date, "%4d-%2d-%2d", &y, &m, &d); err != nil || m < 1 || m > 12 {
		return date
	}
	return fmt.Sprintf("%02d %s %d", d, frenchLongMonths[m-1], y)
}

func buildAdminEmail(cfg *config.Config, ev Event) (subject, html string) {
	label := actionLabel(ev.Type)
	formattedDate := FormatDateFR(ev.Date)

	safeTime := "heure non renseignée"
	if ev.Time != nil && *ev.Time != "" {
		safeTime = *ev.Time
	}

	client := ev.Client
	vehicle := "Véhicule non renseigné"
	if client.VehicleModel != "" || client.VehiclePlate != "" {
		parts := []string{}
		if client.VehicleModel != "" {
			parts = append(parts, client.VehicleModel)
		}
		if client.VehiclePlate != "" {
			parts = append(parts, client.VehiclePlate)
		}
		vehicle = strings.Join(parts, " · ")
	}

	adminURL := ""
	if cfg.AdminDashboardURL != "" {
		qs := url.Values{}
		qs.Set("clientId", fmt.Sprint(client.ID))
		if ev.Date != "" {
			qs.Set("date", ev.Date)
		}
		adminURL = cfg.AdminDashboardURL + "?" + qs.Encode()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", label)
	fmt.Fprintf(&b, "<p><strong>Client :</strong> %s</p>", client.FullName)
	fmt.Fprintf(&b, "<p><strong>Code carte :</strong> %s</p>", client.CardCode)
	fmt.Fprintf(&b, "<p><strong>Téléphone :</strong> %s</p>", orDash(client.Phone))
	fmt.Fprintf(&b, "<p><strong>Email :</strong> %s</p>", orDash(client.Email))
	fmt.Fprintf(&b, "<p><strong>Date :</strong> %s</p>", formattedDate)
	fmt.Fprintf(&b, "<p><strong>Heure :</strong> %s</p>", safeTime)
	fmt.Fprintf(&b, "<p><strong>Véhicule :</strong> %s</p>", vehicle)
	if adminURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Ouvrir le tableau de bord admin</a></p>`, adminURL)
	}
	b.WriteString(`<hr /><p style="font-size:12px;color:#666;">Notification automatique BlackBox · Agenda.</p>`)

	subject = fmt.Sprintf("[BlackBox] %s — %s %s", label, formattedDate, safeTime)
	return subject, b.String()
}

func orDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
