package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contas/internal/core"
	"contas/internal/mail"
)

// AssignmentRequest names who an installment series is attributed to. Empty
// means the purchaser themselves.
type AssignmentRequest struct {
	FamilyID *uuid.UUID
	Email    string
}

// resolveAssigned decides the responsible party before anything is written.
// An unregistered email is the only path with a side effect: the invitation
// mail must go out, and a send failure aborts the whole insert.
func (s *TransactionService) resolveAssigned(ctx context.Context, purchaser *core.User, req AssignmentRequest, base core.Transaction, card *core.Card) (*core.Assigned, error) {
	if req.FamilyID == nil && req.Email == "" {
		return core.SelfAssigned(purchaser.UserID, purchaser.Email), nil
	}

	if req.FamilyID != nil {
		member, err := s.users.GetFamilyMember(ctx, purchaser.UserID, *req.FamilyID)
		if err != nil {
			return nil, fmt.Errorf("resolve family member: %w", err)
		}
		return &core.Assigned{AssignedID: member.FamilyID, Name: member.Name, Email: member.Email}, nil
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return &core.Assigned{AssignedID: user.UserID, Name: user.Name, Email: user.Email}, nil
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("resolve assignee by email: %w", err)
	}

	// Unknown address: invite first, persist only if the mail went out.
	body, err := mail.RenderDutyNotification(mail.DutyMailData{
		PurchaserName:   purchaser.Name,
		TransactionName: base.Name,
		Amount:          base.Repetition.ValueInstallment.BRL(),
		Installments:    base.Repetition.QuantityInstallment,
		CardName:        card.Name,
		CardTypeLabel:   card.Type.Label(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, req.Email, "Nova cobrança registrada em seu nome", body); err != nil {
		return nil, fmt.Errorf("notify assignee: %w", err)
	}

	return &core.Assigned{AssignedID: uuid.New(), Name: req.Email, Email: req.Email}, nil
}
