package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

// Time period phrases. Counted forms are checked before the fixed phrases so
// "last 3 months" does not collapse to "last month".
var (
	lastNMonthsEnRe = regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d{1,2})\s+months?\b`)
	lastNDaysEnRe   = regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d{1,3})\s+days?\b`)
	lastMonthEnRe   = regexp.MustCompile(`(?i)\b(?:last|past)\s+month\b`)
	lastYearEnRe    = regexp.MustCompile(`(?i)\b(?:last|past)\s+year\b`)
	thisMonthEnRe   = regexp.MustCompile(`(?i)\bthis\s+month\b`)

	lastNMonthsHeRe = regexp.MustCompile(`(\d{1,2})\s+החודשים האחרונים|(\d{1,2})\s+חודשים אחרונים`)
	lastMonthHeRe   = regexp.MustCompile(`החודש האחרון|חודש אחרון`)
	lastYearHeRe    = regexp.MustCompile(`השנה האחרונה|שנה אחרונה`)
	thisMonthHeRe   = regexp.MustCompile(`החודש`)
)

// Window extracts the reporting time window a query asks for, relative to
// now. Queries without a time phrase return nil, which readers treat as the
// full history.
func Window(query string, lang domain.Language, now time.Time) *TimeRange {
	switch lang {
	case domain.LangHebrew:
		return hebrewWindow(query, now)
	default:
		return englishWindow(query, now)
	}
}

func englishWindow(query string, now time.Time) *TimeRange {
	if m := lastNMonthsEnRe.FindStringSubmatch(query); m != nil {
		n, _ := strconv.Atoi(m[1])
		return lastMonths(now, n)
	}
	if m := lastNDaysEnRe.FindStringSubmatch(query); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &TimeRange{From: now.AddDate(0, 0, -n), To: now, Label: fmt.Sprintf("last_%d_days", n)}
	}
	if lastMonthEnRe.MatchString(query) {
		return lastMonths(now, 1)
	}
	if lastYearEnRe.MatchString(query) {
		return &TimeRange{From: now.AddDate(-1, 0, 0), To: now, Label: "last_year"}
	}
	if thisMonthEnRe.MatchString(query) {
		return thisMonth(now)
	}
	return nil
}

func hebrewWindow(query string, now time.Time) *TimeRange {
	if m := lastNMonthsHeRe.FindStringSubmatch(query); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		n, _ := strconv.Atoi(digits)
		return lastMonths(now, n)
	}
	if lastMonthHeRe.MatchString(query) {
		return lastMonths(now, 1)
	}
	if lastYearHeRe.MatchString(query) {
		return &TimeRange{From: now.AddDate(-1, 0, 0), To: now, Label: "last_year"}
	}
	// "החודש" alone, checked last so it does not shadow "החודש האחרון".
	if thisMonthHeRe.MatchString(query) {
		return thisMonth(now)
	}
	return nil
}

func lastMonths(now time.Time, n int) *TimeRange {
	if n < 1 {
		n = 1
	}
	label := "last_month"
	if n > 1 {
		label = fmt.Sprintf("last_%d_months", n)
	}
	return &TimeRange{From: now.AddDate(0, -n, 0), To: now, Label: label}
}

func thisMonth(now time.Time) *TimeRange {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return &TimeRange{From: from, To: now, Label: "this_month"}
}

// Extract runs identifier and time-window extraction in one pass.
func Extract(query string, lang domain.Language, now time.Time) Params {
	p := Identifiers(query)
	p.TimeRange = Window(query, lang, now)
	return p
}
