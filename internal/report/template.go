package report

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTemplate names the report after the program and start time.
const DefaultTemplate = "%p-%t.log"

// ExpandTemplate substitutes %p (program), %t (YYYYMMDD-HHMMSS) and %%.
// Any other %x sequence and a trailing lone % are dropped.
func ExpandTemplate(tpl, program string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(tpl) {
			break
		}
		switch tpl[i] {
		case 'p':
			b.WriteString(program)
		case 't':
			fmt.Fprintf(&b, "%04d%02d%02d-%02d%02d%02d",
				t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
		case '%':
			b.WriteByte('%')
		}
	}
	return b.String()
}
