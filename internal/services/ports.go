package services

import (
	"context"

	"github.com/google/uuid"

	"contas/internal/amqp"
	"contas/internal/core"
)

// TransactionStore is the slice of the repository the installment workflows
// need: single-record inserts, series reads and the bulk assignment rewrite.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, t core.Transaction) error
	GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*core.Transaction, error)
	ListInstallments(ctx context.Context, transactionID uuid.UUID) ([]core.Transaction, error)
	ListByPaymentID(ctx context.Context, paymentID uuid.UUID, assignedID *uuid.UUID, search string, take, skip int) ([]core.Transaction, error)
	ListAssignedDuties(ctx context.Context, assignedID uuid.UUID, take, skip int) ([]core.Transaction, error)
	UpdateAssignedByTransactionID(ctx context.Context, transactionID uuid.UUID, assigned core.Assigned) error
	DeleteTransaction(ctx context.Context, transactionID uuid.UUID) error
}

type CardStore interface {
	GetCard(ctx context.Context, walletID, cardID uuid.UUID) (*core.Card, error)
}

type UserStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*core.User, error)
	GetUserByEmail(ctx context.Context, email string) (*core.User, error)
	GetFamilyMember(ctx context.Context, userID, familyID uuid.UUID) (*core.FamilyMember, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// DutyPublisher emits duty events after the store writes succeeded. Publish
// failures are logged and swallowed, the records are already durable.
type DutyPublisher interface {
	PublishDutyEvent(ctx context.Context, msg *amqp.DutyEventMessage) error
}
