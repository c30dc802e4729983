package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"contas/internal/core"
	"contas/internal/storage"
)

type WalletService struct {
	storage *storage.SQLiteRepository
}

func NewWalletService(storage *storage.SQLiteRepository) *WalletService {
	return &WalletService{storage: storage}
}

func (s *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID, name, color string) (*core.Wallet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, core.ErrEmptyName
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	wallet := core.Wallet{
		WalletID: uuid.New(),
		UserID:   user.UserID,
		UserName: user.Name,
		Name:     name,
		Color:    color,
		Active:   true,
	}
	if err := s.storage.InsertWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *WalletService) GetWallet(ctx context.Context, userID, walletID uuid.UUID) (*core.Wallet, error) {
	return s.storage.GetWallet(ctx, userID, walletID)
}

func (s *WalletService) ListWallets(ctx context.Context, userID uuid.UUID) ([]core.Wallet, error) {
	return s.storage.ListWallets(ctx, userID)
}

func (s *WalletService) UpdateWallet(ctx context.Context, userID, walletID uuid.UUID, name, color string) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrEmptyName
	}
	return s.storage.UpdateWallet(ctx, core.Wallet{
		WalletID: walletID,
		UserID:   userID,
		Name:     name,
		Color:    color,
	})
}

func (s *WalletService) SetWalletActive(ctx context.Context, userID, walletID uuid.UUID, active bool) error {
	return s.storage.SetWalletActive(ctx, userID, walletID, active)
}

func (s *WalletService) DeleteWallet(ctx context.Context, userID, walletID uuid.UUID) error {
	return s.storage.DeleteWallet(ctx, userID, walletID)
}
