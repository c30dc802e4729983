package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contas/internal/core"
	"contas/internal/storage"
)

// closingDayOffset is how many days before the due day a card's billing
// cycle closes. The closing day is derived at creation, never set directly.
const closingDayOffset = 6

// closingDayFor walks closingDayOffset days back from the due day on the
// calendar, so due days early in the month wrap into the previous month
// instead of going below 1.
func closingDayFor(now time.Time, dueDay int) int {
	due := time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	return due.AddDate(0, 0, -closingDayOffset).Day()
}

type CardService struct {
	storage *storage.SQLiteRepository
}

func NewCardService(storage *storage.SQLiteRepository) *CardService {
	return &CardService{storage: storage}
}

type CreateCardRequest struct {
	Name   string
	Color  string
	DueDay int
	Type   core.CardType
}

func (s *CardService) CreateCard(ctx context.Context, userID, walletID uuid.UUID, req CreateCardRequest) (*core.Card, error) {
	wallet, err := s.storage.GetWallet(ctx, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("lookup wallet: %w", err)
	}

	card := core.Card{
		CardID:     uuid.New(),
		WalletID:   wallet.WalletID,
		WalletName: wallet.Name,
		Name:       req.Name,
		Color:      req.Color,
		DueDay:     req.DueDay,
		ClosingDay: closingDayFor(time.Now(), req.DueDay),
		Status:     core.CardStatusCreated,
		Type:       req.Type,
		Active:     true,
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.InsertCard(ctx, card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardService) GetCard(ctx context.Context, walletID, cardID uuid.UUID) (*core.Card, error) {
	return s.storage.GetCard(ctx, walletID, cardID)
}

func (s *CardService) ListCards(ctx context.Context, walletID uuid.UUID) ([]core.Card, error) {
	return s.storage.ListCards(ctx, walletID)
}

func (s *CardService) UpdateCard(ctx context.Context, walletID, cardID uuid.UUID, req CreateCardRequest) (*core.Card, error) {
	card, err := s.storage.GetCard(ctx, walletID, cardID)
	if err != nil {
		return nil, err
	}

	card.Name = req.Name
	card.Color = req.Color
	card.DueDay = req.DueDay
	card.ClosingDay = closingDayFor(time.Now(), req.DueDay)
	card.Type = req.Type
	if err := card.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateCard(ctx, *card); err != nil {
		return nil, err
	}
	return card, nil
}

// UpdatePayment moves a card through its billing states.
func (s *CardService) UpdatePayment(ctx context.Context, walletID, cardID uuid.UUID, status core.CardStatus) error {
	switch status {
	case core.CardStatusCreated, core.CardStatusPending, core.CardStatusPaid:
	default:
		return core.ErrInvalidObject
	}
	return s.storage.UpdateCardStatus(ctx, walletID, cardID, status)
}

func (s *CardService) SetCardActive(ctx context.Context, walletID, cardID uuid.UUID, active bool) error {
	return s.storage.SetCardActive(ctx, walletID, cardID, active)
}

func (s *CardService) DeleteCard(ctx context.Context, walletID, cardID uuid.UUID) error {
	return s.storage.DeleteCard(ctx, walletID, cardID)
}
