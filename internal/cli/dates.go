package cli

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate validates a YYYY-MM-DD calendar date and returns it in
// canonical form.
func parseDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("data inválida %q (use AAAA-MM-DD)", s)
	}
	return t.Format(dateLayout), nil
}

// dateOrToday returns today's date when s is empty, otherwise validates s.
func dateOrToday(s string) (string, error) {
	if s == "" {
		return time.Now().Format(dateLayout), nil
	}
	return parseDate(s)
}

// displayDate renders "2006-01-02" as "02/01" for table headers.
func displayDate(d string) string {
	if len(d) != 10 {
		return d
	}
	return d[8:10] + "/" + d[5:7]
}
