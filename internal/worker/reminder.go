package worker

import (
	"context"
	"fmt"
	"log/slog"

	"contas/internal/amqp"
	"contas/internal/core"
	"contas/internal/mail"
	"contas/internal/storage"
)

// ReminderWorker turns duty events into notification mails and periodically
// rescans pending duties in case a queued event was lost.
type ReminderWorker struct {
	storage   *storage.SQLiteRepository
	mailer    mail.Mailer
	batchSize int
}

func NewReminderWorker(storage *storage.SQLiteRepository, mailer mail.Mailer, batchSize int) *ReminderWorker {
	return &ReminderWorker{
		storage:   storage,
		mailer:    mailer,
		batchSize: batchSize,
	}
}

// HandleDutyEvent processes a single duty event message from AMQP
func (w *ReminderWorker) HandleDutyEvent(ctx context.Context, msg *amqp.DutyEventMessage) error {
	slog.InfoContext(ctx, "Processing duty event",
		"transaction_id", msg.TransactionID,
		"kind", msg.Kind)

	if msg.Kind != amqp.DutyAssigned {
		// Resolved events are informational, nothing to mail.
		return nil
	}

	transaction, err := w.storage.GetTransactionByID(ctx, msg.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}
	if transaction.Assigned == nil || transaction.Assigned.IsSelf() {
		slog.InfoContext(ctx, "Duty already resolved, skipping mail",
			"transaction_id", msg.TransactionID)
		return nil
	}

	return w.sendDutyMail(ctx, transaction, mail.RenderDutyNotification)
}

// ProcessPendingDuties re-mails anyone still sitting on an unresolved duty.
// This is a backup mechanism in case AMQP messages are lost.
func (w *ReminderWorker) ProcessPendingDuties(ctx context.Context) error {
	pending, err := w.storage.ListPendingDuties(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending duties: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending duties", "count", len(pending))

	for _, transaction := range pending {
		if err := w.sendDutyMail(ctx, &transaction, mail.RenderDutyReminder); err != nil {
			slog.ErrorContext(ctx, "Failed to send duty reminder",
				"transaction_id", transaction.TransactionID,
				"error", err)
			// Keep going, the next pass retries this one.
		}
	}
	return nil
}

func (w *ReminderWorker) sendDutyMail(ctx context.Context, t *core.Transaction, render func(mail.DutyMailData) (string, error)) error {
	creator, err := w.storage.GetUserByID(ctx, t.CreatedBy)
	if err != nil {
		return fmt.Errorf("get creator: %w", err)
	}

	data := mail.DutyMailData{
		AssignedName:    t.Assigned.Name,
		PurchaserName:   creator.Name,
		TransactionName: t.Name,
		Amount:          t.Repetition.ValueInstallment.BRL(),
		Installments:    t.Repetition.QuantityInstallment,
	}
	if t.PaymentDetails != nil {
		data.CardName = t.PaymentDetails.Name
	}
	if t.Type != "" {
		data.CardTypeLabel = t.Type.Label()
	}

	body, err := render(data)
	if err != nil {
		return err
	}
	if err := w.mailer.Send(ctx, t.Assigned.Email, "Cobrança pendente", body); err != nil {
		return fmt.Errorf("send duty mail: %w", err)
	}

	slog.InfoContext(ctx, "Sent duty mail",
		"transaction_id", t.TransactionID,
		"assigned", t.Assigned.AssignedID)
	return nil
}
