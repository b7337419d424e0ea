package archive

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// DefaultRoot is the fixed folder the archive hierarchy lives under.
const DefaultRoot = "R60_PROCESADOS"

// PathFor derives the destination folder segments (root/year/month) from
// the submission's form date, falling back to now when the date is
// missing or unparsable.
func PathFor(root string, sub *models.Submission, now time.Time) []string {
	t := formDate(sub, now)
	return []string{root, t.Format("2006"), t.Format("01")}
}

// FileNameFor builds the canonical archive name:
// YYYY-MM-DD_Form-<number>_<requester>.xlsx, with the requester stripped
// of anything but letters, digits, spaces, hyphens and underscores, and
// spaces replaced by underscores.
func FileNameFor(sub *models.Submission, now time.Time) string {
	number := sub.Number()
	if number == "" {
		number = "SinNumero"
	}
	requester := sanitize(sub.Requester())
	if requester == "" {
		requester = "Desconocido"
	}

	date := formDate(sub, now).Format("2006-01-02")
	return fmt.Sprintf("%s_Form-%s_%s.xlsx", date, number, requester)
}

func formDate(sub *models.Submission, now time.Time) time.Time {
	if d := sub.Date(); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return t
		}
	}
	return now
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}
