package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contas/internal/amqp"
	"contas/internal/core"
)

type dutyFixture struct {
	service   *DutyService
	store     *fakeStore
	publisher *fakePublisher

	creator  core.User
	approver core.User
	card     core.Card // the approver's card

	pendingID uuid.UUID
	quantity  int
}

func newDutyFixture(t *testing.T) *dutyFixture {
	t.Helper()

	creator := core.User{UserID: uuid.New(), Name: "João", Email: "joao@example.com", Active: true}
	approver := core.User{UserID: uuid.New(), Name: "Maria", Email: "maria@example.com", Active: true}
	card := core.Card{
		CardID:     uuid.New(),
		WalletID:   uuid.New(),
		Name:       "Inter",
		Color:      "#FF7A00",
		DueDay:     15,
		ClosingDay: 9,
		Status:     core.CardStatusCreated,
		Type:       core.CardCredit,
		Active:     true,
	}

	store := &fakeStore{}
	users := &fakeUsers{users: map[uuid.UUID]core.User{
		creator.UserID:  creator,
		approver.UserID: approver,
	}}
	cards := &fakeCards{cards: map[uuid.UUID]core.Card{card.CardID: card}}
	publisher := &fakePublisher{}

	// Seed a pending series created by João and assigned to Maria.
	purchase := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	base := baseTransaction(purchase, 3)
	base.CreatedBy = creator.UserID
	base.Assigned = &core.Assigned{AssignedID: approver.UserID, Name: approver.Name, Email: approver.Email}
	cycle := core.ComputeCycle(purchase, 4, 10)
	require.NoError(t, persistInstallments(context.Background(), store, ExpandInstallments(base, cycle)))

	return &dutyFixture{
		service:   NewDutyService(store, cards, users, publisher),
		store:     store,
		publisher: publisher,
		creator:   creator,
		approver:  approver,
		card:      card,
		pendingID: base.TransactionID,
		quantity:  3,
	}
}

func TestEvaluate_ApproveMintsNewSeries(t *testing.T) {
	f := newDutyFixture(t)

	newID, err := f.service.Evaluate(context.Background(), f.approver.UserID, EvaluateDutyRequest{
		TransactionID: f.pendingID,
		Approved:      true,
		NewWalletID:   f.card.WalletID,
		NewCardID:     f.card.CardID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, f.pendingID, newID)

	rehomed, err := f.service.store.ListInstallments(context.Background(), newID)
	require.NoError(t, err)
	require.Len(t, rehomed, f.quantity)
	for _, r := range rehomed {
		require.NotNil(t, r.Assigned)
		assert.True(t, r.Assigned.IsSelf())
		assert.Equal(t, f.approver.UserID, r.Assigned.AssignedID)
		assert.Equal(t, f.approver.UserID, r.CreatedBy)
		require.NotNil(t, r.PaymentDetails)
		assert.Equal(t, f.card.CardID, r.PaymentDetails.ID)
	}

	// The original pending set is untouched, only Reject rewrites it.
	original, err := f.service.store.ListInstallments(context.Background(), f.pendingID)
	require.NoError(t, err)
	require.Len(t, original, f.quantity)
	for _, r := range original {
		assert.Equal(t, f.approver.UserID, r.Assigned.AssignedID)
		assert.False(t, r.Assigned.IsSelf())
	}

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, amqp.DutyResolved, f.publisher.events[0].Kind)
}

func TestEvaluate_ApproveUsesNewCardCycle(t *testing.T) {
	f := newDutyFixture(t)

	newID, err := f.service.Evaluate(context.Background(), f.approver.UserID, EvaluateDutyRequest{
		TransactionID: f.pendingID,
		Approved:      true,
		NewWalletID:   f.card.WalletID,
		NewCardID:     f.card.CardID,
	})
	require.NoError(t, err)

	rehomed, err := f.service.store.ListInstallments(context.Background(), newID)
	require.NoError(t, err)
	require.Len(t, rehomed, f.quantity)
	for _, r := range rehomed {
		assert.Equal(t, f.card.DueDay, r.ExpirationDate.Day(),
			"rehomed expirations follow the target card's due day")
	}
	for i := 1; i < len(rehomed); i++ {
		want := core.AddMonths(rehomed[i-1].ExpirationDate, 1)
		assert.True(t, rehomed[i].ExpirationDate.Equal(want))
	}
}

func TestEvaluate_ApproveMissingCard(t *testing.T) {
	f := newDutyFixture(t)

	_, err := f.service.Evaluate(context.Background(), f.approver.UserID, EvaluateDutyRequest{
		TransactionID: f.pendingID,
		Approved:      true,
		NewWalletID:   f.card.WalletID,
		NewCardID:     uuid.New(),
	})

	assert.ErrorIs(t, err, core.ErrCardNotFound)
	assert.Len(t, f.store.records, f.quantity, "a failed approval writes nothing")
}

func TestEvaluate_RejectRewritesWholeSeries(t *testing.T) {
	f := newDutyFixture(t)

	id, err := f.service.Evaluate(context.Background(), f.approver.UserID, EvaluateDutyRequest{
		TransactionID: f.pendingID,
		Approved:      false,
	})
	require.NoError(t, err)
	assert.Equal(t, f.pendingID, id, "reject keeps the original series")

	records, err := f.service.store.ListInstallments(context.Background(), f.pendingID)
	require.NoError(t, err)
	require.Len(t, records, f.quantity)
	for _, r := range records {
		require.NotNil(t, r.Assigned)
		assert.True(t, r.Assigned.IsSelf())
		assert.Equal(t, f.creator.UserID, r.Assigned.AssignedID)
		assert.Equal(t, f.creator.Email, r.Assigned.Email)
	}
	assert.Len(t, f.store.records, f.quantity, "reject mints no new records")
}

func TestEvaluate_TransactionNotFound(t *testing.T) {
	f := newDutyFixture(t)

	_, err := f.service.Evaluate(context.Background(), f.approver.UserID, EvaluateDutyRequest{
		TransactionID: uuid.New(),
		Approved:      false,
	})

	assert.ErrorIs(t, err, core.ErrTransactionNotFound)
}

func TestEvaluate_ConcurrentCallsSerialized(t *testing.T) {
	f := newDutyFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Evaluate(context.Background(), f.approver.UserID, EvaluateDutyRequest{
				TransactionID: f.pendingID,
				Approved:      false,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := f.service.store.ListInstallments(context.Background(), f.pendingID)
	require.NoError(t, err)
	require.Len(t, records, f.quantity)
	for _, r := range records {
		assert.Equal(t, f.creator.UserID, r.Assigned.AssignedID)
	}
}

func TestListDuties_ExcludesSelfAssigned(t *testing.T) {
	f := newDutyFixture(t)

	// A self-assigned series of Maria's own must not show up as a duty.
	purchase := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	own := baseTransaction(purchase, 2)
	own.CreatedBy = f.approver.UserID
	own.Assigned = core.SelfAssigned(f.approver.UserID, f.approver.Email)
	cycle := core.ComputeCycle(purchase, 4, 10)
	require.NoError(t, persistInstallments(context.Background(), f.store, ExpandInstallments(own, cycle)))

	duties, err := f.service.ListDuties(context.Background(), f.approver.UserID, 20, 0)
	require.NoError(t, err)
	require.Len(t, duties, 1, "one entry per pending series, self-assigned excluded")
	assert.Equal(t, f.pendingID, duties[0].TransactionID)
}

func TestDutyLocks_FixedStripeSet(t *testing.T) {
	// Evaluations hash onto a fixed set of lock stripes: the same id always
	// lands on the same stripe, and the set never grows with traffic.
	s := &DutyService{}

	stripes := make(map[*sync.Mutex]struct{})
	for i := 0; i < 10000; i++ {
		id := uuid.New()
		first := s.stripe(id)
		require.Same(t, first, s.stripe(id))
		stripes[first] = struct{}{}
	}
	assert.LessOrEqual(t, len(stripes), dutyLockStripes)
	assert.Greater(t, len(stripes), 1, "ids should spread over multiple stripes")
}
