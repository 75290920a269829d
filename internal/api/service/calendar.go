package service

import (
	"fmt"
	"strings"

	"github.com/activist-org/activist-api/internal/api/domain"
)

// icsTimeLayout is RFC 5545 basic-format UTC date-time.
const icsTimeLayout = "20060102T150405Z"

// EventICS renders a single event as an iCalendar document: one VEVENT
// inside a VCALENDAR, CRLF line endings, UTC times.
func EventICS(event domain.Event) []byte {
	var b strings.Builder

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//activist//activist API//EN")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("METHOD:PUBLISH")
	writeLine("BEGIN:VEVENT")
	writeLine("UID:" + event.ID + "@activist.org")
	writeLine("DTSTAMP:" + event.UpdatedAt.UTC().Format(icsTimeLayout))
	writeLine("DTSTART:" + event.StartTime.UTC().Format(icsTimeLayout))
	writeLine("DTEND:" + event.EndTime.UTC().Format(icsTimeLayout))
	writeLine("SUMMARY:" + escapeICSText(event.Name))
	if event.Description != "" {
		writeLine("DESCRIPTION:" + escapeICSText(event.Description))
	}
	if event.Location != "" {
		writeLine("LOCATION:" + escapeICSText(event.Location))
	}
	writeLine("END:VEVENT")
	writeLine("END:VCALENDAR")

	return []byte(b.String())
}

// CalendarFilename is the attachment filename for an event export.
func CalendarFilename(event domain.Event) string {
	return fmt.Sprintf("activist_event_%s.ics", event.Slug)
}

// escapeICSText applies RFC 5545 TEXT escaping: backslash, semicolon, comma
// and newline.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
