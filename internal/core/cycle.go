package core

import "time"

// BillingCycle is the pair of boundary dates governing a credit-card purchase:
// the day the invoice closes and the day payment is owed.
type BillingCycle struct {
	ClosingDate time.Time
	DueDate     time.Time
}

// ComputeCycle derives the billing cycle for a card from the evaluation moment.
// The due date lands in the current month while dueDay is still ahead of now's
// day of month, and rolls to the next month once it has passed. The month roll
// is anchored on the evaluation moment rather than the purchase date, mirroring
// how card invoices are settled relative to "today". The closing date lands in
// the current month on closingDay; a closing day greater than the due day means
// the invoice closes in the month before the due date, clamped to that month's
// last day.
//
// Day values above 28 are not clamped in the current month; callers must hand
// in days that exist in the months involved.
func ComputeCycle(now time.Time, closingDay, dueDay int) BillingCycle {
	due := time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	if dueDay <= now.Day() {
		due = due.AddDate(0, 1, 0)
	}
	closing := time.Date(now.Year(), now.Month(), closingDay, 0, 0, 0, 0, time.UTC)
	if closingDay > dueDay {
		lastOfPrev := time.Date(due.Year(), due.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		day := closingDay
		if day > lastOfPrev.Day() {
			day = lastOfPrev.Day()
		}
		closing = time.Date(lastOfPrev.Year(), lastOfPrev.Month(), day, 0, 0, 0, 0, time.UTC)
	}
	return BillingCycle{ClosingDate: closing, DueDate: due}
}

// AddMonths shifts a date by whole calendar months. Offsets are always applied
// to the base date, never cumulatively, so a series of expirations stays
// exactly one month apart.
func AddMonths(d time.Time, months int) time.Time {
	return d.AddDate(0, months, 0)
}
