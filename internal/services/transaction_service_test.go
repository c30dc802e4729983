package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contas/internal/amqp"
	"contas/internal/core"
)

type transactionFixture struct {
	service   *TransactionService
	store     *fakeStore
	users     *fakeUsers
	mailer    *fakeMailer
	publisher *fakePublisher

	purchaser core.User
	member    core.FamilyMember
	card      core.Card
}

func newTransactionFixture() *transactionFixture {
	purchaser := core.User{
		UserID: uuid.New(),
		Name:   "João",
		Email:  "joao@example.com",
		Active: true,
	}
	member := core.FamilyMember{
		FamilyID: uuid.New(),
		UserID:   purchaser.UserID,
		Name:     "Maria",
		Email:    "maria@example.com",
		Kinship:  "irmã",
		Active:   true,
	}
	card := core.Card{
		CardID:     uuid.New(),
		WalletID:   uuid.New(),
		WalletName: "Pessoal",
		Name:       "Nubank",
		Color:      "#820AD1",
		DueDay:     10,
		ClosingDay: 4,
		Status:     core.CardStatusCreated,
		Type:       core.CardCredit,
		Active:     true,
	}

	store := &fakeStore{}
	users := &fakeUsers{
		users:   map[uuid.UUID]core.User{purchaser.UserID: purchaser},
		members: map[uuid.UUID]core.FamilyMember{member.FamilyID: member},
	}
	cards := &fakeCards{cards: map[uuid.UUID]core.Card{card.CardID: card}}
	mailer := &fakeMailer{}
	publisher := &fakePublisher{}

	return &transactionFixture{
		service:   NewTransactionService(store, cards, users, mailer, publisher),
		store:     store,
		users:     users,
		mailer:    mailer,
		publisher: publisher,
		purchaser: purchaser,
		member:    member,
		card:      card,
	}
}

func (f *transactionFixture) request(quantity int, assignment AssignmentRequest) InsertTransactionRequest {
	return InsertTransactionRequest{
		WalletID:     f.card.WalletID,
		CardID:       f.card.CardID,
		Name:         "Mercado",
		CashFlow:     core.CashFlowExit,
		Type:         core.PaymentCreditCard,
		PurchaseDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Repetition: core.Repetition{
			QuantityInstallment: quantity,
			CurrentInstallment:  1,
			ValueInstallment:    core.Money{Cents: 5000},
		},
		Assignment: assignment,
	}
}

func TestInsertTransaction_SelfAssigned(t *testing.T) {
	f := newTransactionFixture()

	txID, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID, f.request(3, AssignmentRequest{}))
	require.NoError(t, err)

	require.Len(t, f.store.records, 3)
	for _, r := range f.store.records {
		assert.Equal(t, txID, r.TransactionID)
		require.NotNil(t, r.Assigned)
		assert.True(t, r.Assigned.IsSelf())
		assert.Equal(t, f.purchaser.UserID, r.Assigned.AssignedID)
	}
	assert.Empty(t, f.mailer.sent, "self assignment must not mail anyone")
	assert.Empty(t, f.publisher.events, "self assignment is not a duty")
}

func TestInsertTransaction_FamilyMember(t *testing.T) {
	f := newTransactionFixture()

	txID, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID,
		f.request(2, AssignmentRequest{FamilyID: &f.member.FamilyID}))
	require.NoError(t, err)

	require.Len(t, f.store.records, 2)
	for _, r := range f.store.records {
		require.NotNil(t, r.Assigned)
		assert.Equal(t, f.member.FamilyID, r.Assigned.AssignedID)
		assert.Equal(t, "Maria", r.Assigned.Name)
	}

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, amqp.DutyAssigned, f.publisher.events[0].Kind)
	assert.Equal(t, txID, f.publisher.events[0].TransactionID)
}

func TestInsertTransaction_FamilyMemberNotFound(t *testing.T) {
	f := newTransactionFixture()
	unknown := uuid.New()

	_, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID,
		f.request(2, AssignmentRequest{FamilyID: &unknown}))

	assert.ErrorIs(t, err, core.ErrFamilyMemberNotFound)
	assert.Empty(t, f.store.records)
}

func TestInsertTransaction_RegisteredEmail(t *testing.T) {
	f := newTransactionFixture()
	other := core.User{UserID: uuid.New(), Name: "Ana", Email: "ana@example.com", Active: true}
	f.users.users[other.UserID] = other

	_, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID,
		f.request(1, AssignmentRequest{Email: other.Email}))
	require.NoError(t, err)

	require.Len(t, f.store.records, 1)
	assert.Equal(t, other.UserID, f.store.records[0].Assigned.AssignedID)
	assert.Empty(t, f.mailer.sent, "registered assignees are notified via the queue, not inline mail")
}

func TestInsertTransaction_UnregisteredEmailSendsInvitation(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID,
		f.request(3, AssignmentRequest{Email: "novo@example.com"}))
	require.NoError(t, err)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "novo@example.com", f.mailer.sent[0].to)
	assert.Contains(t, f.mailer.sent[0].body, "João")
	assert.Contains(t, f.mailer.sent[0].body, "Nubank")

	require.Len(t, f.store.records, 3)
	assert.Equal(t, "novo@example.com", f.store.records[0].Assigned.Email)
}

func TestInsertTransaction_MailFailureAbortsBeforeAnyWrite(t *testing.T) {
	f := newTransactionFixture()
	f.mailer.fail = true

	_, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID,
		f.request(3, AssignmentRequest{Email: "novo@example.com"}))

	assert.ErrorIs(t, err, core.ErrSendEmail)
	assert.Empty(t, f.store.records, "mail gate must run before the first insert")
	assert.Empty(t, f.publisher.events)
}

func TestInsertTransaction_InvalidRepetition(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID,
		f.request(0, AssignmentRequest{}))

	assert.ErrorIs(t, err, core.ErrInvalidRepetition)
	assert.Empty(t, f.store.records)
}

func TestInsertTransaction_CardNotFound(t *testing.T) {
	f := newTransactionFixture()
	req := f.request(1, AssignmentRequest{})
	req.CardID = uuid.New()

	_, err := f.service.InsertTransaction(context.Background(), f.purchaser.UserID, req)

	assert.ErrorIs(t, err, core.ErrCardNotFound)
	assert.Empty(t, f.store.records)
}
