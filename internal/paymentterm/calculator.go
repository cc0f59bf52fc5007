// Package paymentterm computes concrete due dates from payment term
// configurations. Pure: no database access, no side effects.
package paymentterm

import (
	"fmt"
	"sort"
	"time"
)

// Kind selects the due date rule.
type Kind string

const (
	// KindFromInvoice: due = invoice date + Days
	KindFromInvoice Kind = "from_invoice"
	// KindFromDelivery: due = delivery date + Days
	KindFromDelivery Kind = "from_delivery"
	// KindFixedDates: due = earliest configured day-of-month anchor
	// strictly after the base date, rolling into following months
	KindFixedDates Kind = "fixed_dates"
	// KindWeekly: due = next occurrence of Weekday strictly after base
	KindWeekly Kind = "weekly"
)

// LastDayAnchor is the day-of-month sentinel meaning "last day of the
// month". Anchors larger than the month's length clamp to its last day,
// so 31 always resolves to month end.
const LastDayAnchor = 31

// Term is a payment term configuration.
type Term struct {
	Kind    Kind
	Days    int          // from-event kinds
	Anchors []int        // fixed_dates kind, day-of-month values
	Weekday time.Weekday // weekly kind
}

// Result is the outcome of a due date calculation. When OK is false the
// term was missing or misconfigured and Reason says why; this is not an
// error condition, the order simply has no due date.
type Result struct {
	Due    time.Time
	OK     bool
	Reason string
}

func skipped(reason string) Result {
	return Result{OK: false, Reason: reason}
}

// DueDate maps a term configuration and base date to a concrete due date.
// Deterministic; never returns a date at or before base.
func DueDate(base time.Time, term *Term) Result {
	if term == nil {
		return skipped("payment term not configured")
	}
	base = truncateToDay(base)

	switch term.Kind {
	case KindFromInvoice, KindFromDelivery:
		if term.Days < 0 {
			return skipped(fmt.Sprintf("invalid day count %d", term.Days))
		}
		return Result{Due: base.AddDate(0, 0, term.Days), OK: true}

	case KindFixedDates:
		return nextAnchor(base, term.Anchors)

	case KindWeekly:
		if term.Weekday < time.Sunday || term.Weekday > time.Saturday {
			return skipped(fmt.Sprintf("invalid weekday %d", term.Weekday))
		}
		delta := int(term.Weekday-base.Weekday()+7) % 7
		if delta == 0 {
			// Same weekday never counts: always advance a full week
			delta = 7
		}
		return Result{Due: base.AddDate(0, 0, delta), OK: true}

	default:
		return skipped(fmt.Sprintf("unknown term kind %q", term.Kind))
	}
}

// nextAnchor picks the earliest anchor date strictly after base. When every
// anchor in the base month has passed it rolls into the following month,
// where the earliest anchor always exists (anchors clamp to month length).
func nextAnchor(base time.Time, anchors []int) Result {
	days := make([]int, 0, len(anchors))
	for _, d := range anchors {
		if d >= 1 && d <= LastDayAnchor {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return skipped("no anchor days configured")
	}
	sort.Ints(days)

	year, month := base.Year(), base.Month()
	for i := 0; i < 2; i++ {
		for _, d := range days {
			candidate := anchorDate(year, month, d, base.Location())
			if candidate.After(base) {
				return Result{Due: candidate, OK: true}
			}
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	// Unreachable: the following month always has a future anchor
	return skipped("no future anchor date found")
}

// anchorDate resolves a day-of-month anchor within a month, clamping to
// the month's last day (February 31 → February 28/29).
func anchorDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := lastDayOfMonth(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
