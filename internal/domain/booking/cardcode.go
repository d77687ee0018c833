package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CardCodePrefix matches the codes engraved on the physical NFC cards.
const CardCodePrefix = "BBX"

var cardCodeRe = regexp.MustCompile(`^([A-Z]+)-(\d+)$`)

// NextCardCode computes the code following the highest one already
// issued: "BBX-007" -> "BBX-008". An empty or foreign-looking last code
// starts the sequence at 001.
func NextCardCode(lastCode string) string {
	next := 1
	if m := cardCodeRe.FindStringSubmatch(lastCode); m != nil && m[1] == CardCodePrefix {
		if n, err := strconv.Atoi(m[2]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s-%03d", CardCodePrefix, next)
}

// SlugForCardCode: the public URL segment is just the lowercased code.
func SlugForCardCode(code string) string {
	return strings.ToLower(code)
}
