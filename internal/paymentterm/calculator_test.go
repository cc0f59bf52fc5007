package paymentterm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueDateFromInvoice(t *testing.T) {
	term := &Term{Kind: KindFromInvoice, Days: 30}

	res := DueDate(date(2025, time.January, 15), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.February, 14), res.Due)
}

func TestDueDateFromDeliveryZeroDays(t *testing.T) {
	term := &Term{Kind: KindFromDelivery, Days: 0}

	res := DueDate(date(2025, time.March, 3), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.March, 3), res.Due)
}

func TestDueDateNegativeDays(t *testing.T) {
	term := &Term{Kind: KindFromInvoice, Days: -5}

	res := DueDate(date(2025, time.March, 3), term)
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "invalid day count")
}

func TestDueDateNilTerm(t *testing.T) {
	res := DueDate(date(2025, time.March, 3), nil)
	assert.False(t, res.OK)
	assert.Equal(t, "payment term not configured", res.Reason)
}

func TestDueDateUnknownKind(t *testing.T) {
	res := DueDate(date(2025, time.March, 3), &Term{Kind: "monthly"})
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "unknown term kind")
}

func TestDueDateTruncatesTimeOfDay(t *testing.T) {
	term := &Term{Kind: KindFromInvoice, Days: 1}

	base := time.Date(2025, time.June, 10, 17, 45, 12, 0, time.UTC)
	res := DueDate(base, term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.June, 11), res.Due)
}

func TestFixedDatesPicksNextAnchorInMonth(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{10, 25}}

	res := DueDate(date(2025, time.January, 12), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.January, 25), res.Due)
}

func TestFixedDatesAnchorDayItselfDoesNotCount(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{10, 25}}

	// Base exactly on an anchor must roll to the next one
	res := DueDate(date(2025, time.January, 25), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.February, 10), res.Due)
}

func TestFixedDatesRollsIntoNextMonth(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{10}}

	res := DueDate(date(2025, time.January, 11), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.February, 10), res.Due)
}

func TestFixedDatesRollsAcrossYearBoundary(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{10}}

	res := DueDate(date(2025, time.December, 15), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2026, time.January, 10), res.Due)
}

func TestFixedDatesLastDayAnchorClampsToFebruary(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{LastDayAnchor}}

	res := DueDate(date(2025, time.February, 10), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.February, 28), res.Due)
}

func TestFixedDatesLastDayAnchorLeapYear(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{LastDayAnchor}}

	res := DueDate(date(2024, time.February, 10), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2024, time.February, 29), res.Due)
}

func TestFixedDatesIgnoresOutOfRangeAnchors(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{0, 40, 15}}

	res := DueDate(date(2025, time.April, 1), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.April, 15), res.Due)
}

func TestFixedDatesNoValidAnchors(t *testing.T) {
	term := &Term{Kind: KindFixedDates, Anchors: []int{0, 99}}

	res := DueDate(date(2025, time.April, 1), term)
	assert.False(t, res.OK)
	assert.Equal(t, "no anchor days configured", res.Reason)
}

func TestWeeklyNextOccurrence(t *testing.T) {
	term := &Term{Kind: KindWeekly, Weekday: time.Friday}

	// 2025-01-15 is a Wednesday
	res := DueDate(date(2025, time.January, 15), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.January, 17), res.Due)
	assert.Equal(t, time.Friday, res.Due.Weekday())
}

func TestWeeklySameWeekdayAdvancesFullWeek(t *testing.T) {
	term := &Term{Kind: KindWeekly, Weekday: time.Wednesday}

	// 2025-01-15 is a Wednesday: due lands a week later, never same day
	res := DueDate(date(2025, time.January, 15), term)
	require.True(t, res.OK)
	assert.Equal(t, date(2025, time.January, 22), res.Due)
}

func TestWeeklyAlwaysStrictlyAfterBase(t *testing.T) {
	base := date(2025, time.March, 1)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		res := DueDate(base, &Term{Kind: KindWeekly, Weekday: wd})
		require.True(t, res.OK)
		assert.True(t, res.Due.After(base), "weekday %v produced %v", wd, res.Due)
		assert.Equal(t, wd, res.Due.Weekday())
	}
}
