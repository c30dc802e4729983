package services

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"contas/internal/amqp"
	"contas/internal/core"
)

// dutyLockStripes sizes the fixed lock set guarding evaluations. Ids hash
// onto stripes, so memory stays constant no matter how many transactions
// the process has seen.
const dutyLockStripes = 64

// DutyService runs the approve/reject workflow on pending shared purchases.
// Two concurrent evaluations of the same transaction id are serialized by
// its lock stripe, so the second caller observes the outcome of the first.
type DutyService struct {
	store     TransactionStore
	cards     CardStore
	users     UserStore
	publisher DutyPublisher

	locks [dutyLockStripes]sync.Mutex
}

func NewDutyService(store TransactionStore, cards CardStore, users UserStore, publisher DutyPublisher) *DutyService {
	return &DutyService{
		store:     store,
		cards:     cards,
		users:     users,
		publisher: publisher,
	}
}

type EvaluateDutyRequest struct {
	TransactionID uuid.UUID
	Approved      bool
	NewWalletID   uuid.UUID
	NewCardID     uuid.UUID
}

// Evaluate applies the assignee's decision to the whole installment set.
// Approve mints a fresh transaction id and regenerates the series under the
// approver's card; the original pending set is left untouched. Reject bulk
// rewrites the original set back to its creator. Returns the id of the set
// that now represents the purchase.
func (s *DutyService) Evaluate(ctx context.Context, approverID uuid.UUID, req EvaluateDutyRequest) (uuid.UUID, error) {
	unlock := s.lock(req.TransactionID)
	defer unlock()

	original, err := s.store.GetTransactionByID(ctx, req.TransactionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup transaction: %w", err)
	}

	if req.Approved {
		return s.approve(ctx, approverID, original, req)
	}
	return s.reject(ctx, original)
}

func (s *DutyService) approve(ctx context.Context, approverID uuid.UUID, original *core.Transaction, req EvaluateDutyRequest) (uuid.UUID, error) {
	card, err := s.cards.GetCard(ctx, req.NewWalletID, req.NewCardID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup target card: %w", err)
	}
	approver, err := s.users.GetUserByID(ctx, approverID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup approver: %w", err)
	}

	rehomed := *original
	rehomed.TransactionID = uuid.New()
	rehomed.Assigned = core.SelfAssigned(approver.UserID, approver.Email)
	rehomed.PaymentDetails = &core.PaymentDetails{
		ID:    card.CardID,
		Name:  card.Name,
		Color: card.Color,
	}
	rehomed.CreatedBy = approverID
	rehomed.CreatedAt = time.Now().UTC()

	cycle := core.ComputeCycle(time.Now(), card.ClosingDay, card.DueDay)
	records := ExpandInstallments(rehomed, cycle)
	if err := persistInstallments(ctx, s.store, records); err != nil {
		return uuid.Nil, err
	}

	s.publishResolved(ctx, original.TransactionID, original.Assigned)

	slog.InfoContext(ctx, "Duty approved",
		"transaction_id", original.TransactionID,
		"new_transaction_id", rehomed.TransactionID,
		"approver", approverID)
	return rehomed.TransactionID, nil
}

func (s *DutyService) reject(ctx context.Context, original *core.Transaction) (uuid.UUID, error) {
	creator, err := s.users.GetUserByID(ctx, original.CreatedBy)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup creator: %w", err)
	}

	assigned := core.SelfAssigned(creator.UserID, creator.Email)
	if err := s.store.UpdateAssignedByTransactionID(ctx, original.TransactionID, *assigned); err != nil {
		return uuid.Nil, fmt.Errorf("return duty to creator: %w", err)
	}

	s.publishResolved(ctx, original.TransactionID, original.Assigned)

	slog.InfoContext(ctx, "Duty rejected",
		"transaction_id", original.TransactionID,
		"creator", creator.UserID)
	return original.TransactionID, nil
}

// ListDuties returns the series pending a decision from the given party.
func (s *DutyService) ListDuties(ctx context.Context, assignedID uuid.UUID, take, skip int) ([]core.Transaction, error) {
	if take <= 0 || take > 100 {
		take = 20
	}
	if skip < 0 {
		skip = 0
	}
	return s.store.ListAssignedDuties(ctx, assignedID, take, skip)
}

func (s *DutyService) publishResolved(ctx context.Context, transactionID uuid.UUID, assigned *core.Assigned) {
	if s.publisher == nil || assigned == nil {
		return
	}
	msg := amqp.NewDutyEventMessage(transactionID, assigned.AssignedID, assigned.Email, amqp.DutyResolved)
	if err := s.publisher.PublishDutyEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish duty event",
			"transaction_id", transactionID, "kind", amqp.DutyResolved, "error", err)
	}
}

func (s *DutyService) stripe(id uuid.UUID) *sync.Mutex {
	return &s.locks[binary.BigEndian.Uint32(id[:4])%dutyLockStripes]
}

func (s *DutyService) lock(id uuid.UUID) func() {
	mu := s.stripe(id)
	mu.Lock()
	return mu.Unlock
}
