package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contas/internal/amqp"
	"contas/internal/core"
)

type fakeStore struct {
	records []core.Transaction

	// failAfter aborts InsertTransaction once this many records are stored.
	// Zero means never fail.
	failAfter int
}

func (f *fakeStore) InsertTransaction(_ context.Context, t core.Transaction) error {
	if f.failAfter > 0 && len(f.records) >= f.failAfter {
		return errors.New("store unavailable")
	}
	f.records = append(f.records, t)
	return nil
}

func (f *fakeStore) GetTransactionByID(_ context.Context, transactionID uuid.UUID) (*core.Transaction, error) {
	for _, r := range f.records {
		if r.TransactionID == transactionID {
			record := r
			return &record, nil
		}
	}
	return nil, core.ErrTransactionNotFound
}

func (f *fakeStore) ListInstallments(_ context.Context, transactionID uuid.UUID) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, r := range f.records {
		if r.TransactionID == transactionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByPaymentID(_ context.Context, paymentID uuid.UUID, assignedID *uuid.UUID, search string, take, skip int) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, r := range f.records {
		if r.PaymentDetails != nil && r.PaymentDetails.ID == paymentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAssignedDuties(_ context.Context, assignedID uuid.UUID, take, skip int) ([]core.Transaction, error) {
	seen := map[uuid.UUID]bool{}
	var out []core.Transaction
	for _, r := range f.records {
		if r.Assigned == nil || r.Assigned.IsSelf() || r.Assigned.AssignedID != assignedID {
			continue
		}
		if seen[r.TransactionID] {
			continue
		}
		seen[r.TransactionID] = true
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) UpdateAssignedByTransactionID(_ context.Context, transactionID uuid.UUID, assigned core.Assigned) error {
	updated := 0
	for i := range f.records {
		if f.records[i].TransactionID == transactionID {
			a := assigned
			f.records[i].Assigned = &a
			updated++
		}
	}
	if updated == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, transactionID uuid.UUID) error {
	for i := range f.records {
		if f.records[i].TransactionID == transactionID {
			f.records[i].Active = false
		}
	}
	return nil
}

type fakeCards struct {
	cards map[uuid.UUID]core.Card
}

func (f *fakeCards) GetCard(_ context.Context, walletID, cardID uuid.UUID) (*core.Card, error) {
	card, ok := f.cards[cardID]
	if !ok || card.WalletID != walletID {
		return nil, core.ErrCardNotFound
	}
	return &card, nil
}

type fakeUsers struct {
	users   map[uuid.UUID]core.User
	members map[uuid.UUID]core.FamilyMember
}

func (f *fakeUsers) GetUserByID(_ context.Context, userID uuid.UUID) (*core.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *fakeUsers) GetFamilyMember(_ context.Context, userID, familyID uuid.UUID) (*core.FamilyMember, error) {
	m, ok := f.members[familyID]
	if !ok || m.UserID != userID {
		return nil, core.ErrFamilyMemberNotFound
	}
	return &m, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	fail bool
	sent []sentMail
}

func (f *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if f.fail {
		return fmt.Errorf("%w: connection refused", core.ErrSendEmail)
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type fakePublisher struct {
	events []*amqp.DutyEventMessage
}

func (f *fakePublisher) PublishDutyEvent(_ context.Context, msg *amqp.DutyEventMessage) error {
	f.events = append(f.events, msg)
	return nil
}
