package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contas/internal/core"
)

func (r *SQLiteRepository) InsertWallet(ctx context.Context, w core.Wallet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (wallet_id, user_id, user_name, name, color, active)
		VALUES (?, ?, ?, ?, ?, 1)`,
		w.WalletID, w.UserID, w.UserName, w.Name, w.Color,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetWallet(ctx context.Context, userID, walletID uuid.UUID) (*core.Wallet, error) {
	var w core.Wallet
	err := r.db.QueryRowContext(ctx, `
		SELECT wallet_id, user_id, user_name, name, color, active
		FROM wallets WHERE user_id = ? AND wallet_id = ?`,
		userID, walletID,
	).Scan(&w.WalletID, &w.UserID, &w.UserName, &w.Name, &w.Color, &w.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return &w, nil
}

func (r *SQLiteRepository) ListWallets(ctx context.Context, userID uuid.UUID) ([]core.Wallet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT wallet_id, user_id, user_name, name, color, active
		FROM wallets WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []core.Wallet
	for rows.Next() {
		var w core.Wallet
		if err := rows.Scan(&w.WalletID, &w.UserID, &w.UserName, &w.Name, &w.Color, &w.Active); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (r *SQLiteRepository) UpdateWallet(ctx context.Context, w core.Wallet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallets SET name = ?, color = ?, updated_at = ?
		WHERE user_id = ? AND wallet_id = ?`,
		w.Name, w.Color, time.Now().UTC(), w.UserID, w.WalletID,
	)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrWalletNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetWalletActive(ctx context.Context, userID, walletID uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallets SET active = ?, updated_at = ?
		WHERE user_id = ? AND wallet_id = ?`,
		boolToInt(active), time.Now().UTC(), userID, walletID,
	)
	if err != nil {
		return fmt.Errorf("set wallet active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrWalletNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteWallet(ctx context.Context, userID, walletID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wallets WHERE user_id = ? AND wallet_id = ?`,
		userID, walletID,
	)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrWalletNotFound
	}
	return nil
}
