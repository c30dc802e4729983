package services

import (
	"context"
	"fmt"
	"time"

	"contas/internal/core"
)

// ExpandInstallments materializes one record per installment from the base
// transaction. A purchase on or before the closing date lands in the current
// due cycle; a purchase after it shifts the whole series one cycle later. The
// comparison is between calendar days, so the time of day on the purchase
// never tips it past a midnight closing date.
func ExpandInstallments(base core.Transaction, cycle core.BillingCycle) []core.Transaction {
	offset := 0
	if dateOf(base.PurchaseDate).After(cycle.ClosingDate) {
		offset = 1
	}

	quantity := base.Repetition.QuantityInstallment
	records := make([]core.Transaction, 0, quantity)
	for i := 0; i < quantity; i++ {
		record := base
		record.Repetition.CurrentInstallment = base.Repetition.CurrentInstallment + i
		record.ExpirationDate = core.AddMonths(cycle.DueDate, i+offset)
		records = append(records, record)
	}
	return records
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// persistInstallments writes the records one at a time in index order. There
// is no cross-record transaction: a failure partway through leaves the
// already-written prefix in place, and the error names the failing index.
func persistInstallments(ctx context.Context, store TransactionStore, records []core.Transaction) error {
	for i, record := range records {
		if err := store.InsertTransaction(ctx, record); err != nil {
			return fmt.Errorf("insert installment %d of %d: %w", i+1, len(records), err)
		}
	}
	return nil
}
