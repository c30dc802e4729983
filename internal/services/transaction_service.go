package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"contas/internal/amqp"
	"contas/internal/core"
)

// TransactionService orchestrates transaction inserts across SQLite, the
// mailer and AMQP
type TransactionService struct {
	store     TransactionStore
	cards     CardStore
	users     UserStore
	mailer    Mailer
	publisher DutyPublisher
}

func NewTransactionService(store TransactionStore, cards CardStore, users UserStore, mailer Mailer, publisher DutyPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		cards:     cards,
		users:     users,
		mailer:    mailer,
		publisher: publisher,
	}
}

type InsertTransactionRequest struct {
	WalletID     uuid.UUID
	CardID       uuid.UUID
	Name         string
	CashFlow     core.CashFlow
	Type         core.PaymentType
	PurchaseDate time.Time
	Repetition   core.Repetition
	Assignment   AssignmentRequest
}

// InsertTransaction resolves the responsible party, expands the purchase into
// its installment records and stores them. The assignment mail gate runs
// before the first write, so a failed invitation leaves nothing persisted.
func (s *TransactionService) InsertTransaction(ctx context.Context, userID uuid.UUID, req InsertTransactionRequest) (uuid.UUID, error) {
	purchaser, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup purchaser: %w", err)
	}

	card, err := s.cards.GetCard(ctx, req.WalletID, req.CardID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup card: %w", err)
	}

	base := core.Transaction{
		TransactionID: uuid.New(),
		Name:          req.Name,
		PurchaseDate:  req.PurchaseDate,
		CashFlow:      req.CashFlow,
		Type:          req.Type,
		Repetition:    req.Repetition,
		PaymentDetails: &core.PaymentDetails{
			ID:    card.CardID,
			Name:  card.Name,
			Color: card.Color,
		},
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	if base.Repetition.CurrentInstallment == 0 {
		base.Repetition.CurrentInstallment = 1
	}
	if err := base.Validate(); err != nil {
		return uuid.Nil, err
	}

	assigned, err := s.resolveAssigned(ctx, purchaser, req.Assignment, base, card)
	if err != nil {
		return uuid.Nil, err
	}
	base.Assigned = assigned

	cycle := core.ComputeCycle(time.Now(), card.ClosingDay, card.DueDay)
	records := ExpandInstallments(base, cycle)
	if err := persistInstallments(ctx, s.store, records); err != nil {
		return uuid.Nil, err
	}

	if !assigned.IsSelf() {
		s.publishDutyEvent(ctx, base.TransactionID, assigned, amqp.DutyAssigned)
	}

	return base.TransactionID, nil
}

// GetTransaction returns the first record of a series.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID uuid.UUID) (*core.Transaction, error) {
	return s.store.GetTransactionByID(ctx, transactionID)
}

// ListInstallments returns every record of a series in insertion order.
func (s *TransactionService) ListInstallments(ctx context.Context, transactionID uuid.UUID) ([]core.Transaction, error) {
	return s.store.ListInstallments(ctx, transactionID)
}

// ListByCard pages through the installments charged to a card.
func (s *TransactionService) ListByCard(ctx context.Context, cardID uuid.UUID, assignedID *uuid.UUID, search string, take, skip int) ([]core.Transaction, error) {
	if take <= 0 || take > 100 {
		take = 20
	}
	if skip < 0 {
		skip = 0
	}
	return s.store.ListByPaymentID(ctx, cardID, assignedID, search, take, skip)
}

// DeleteTransaction soft deletes every record of a series.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID uuid.UUID) error {
	return s.store.DeleteTransaction(ctx, transactionID)
}

func (s *TransactionService) publishDutyEvent(ctx context.Context, transactionID uuid.UUID, assigned *core.Assigned, kind string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping duty event")
		return
	}
	msg := amqp.NewDutyEventMessage(transactionID, assigned.AssignedID, assigned.Email, kind)
	if err := s.publisher.PublishDutyEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish duty event",
			"transaction_id", transactionID, "kind", kind, "error", err)
		// Don't fail the request - the records are saved locally
	}
}
