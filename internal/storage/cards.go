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

func (r *SQLiteRepository) InsertCard(ctx context.Context, c core.Card) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (card_id, wallet_id, wallet_name, name, color, due_day, closing_day, status, type, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		c.CardID, c.WalletID, c.WalletName, c.Name, c.Color, c.DueDay, c.ClosingDay, string(c.Status), string(c.Type),
	)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetCard(ctx context.Context, walletID, cardID uuid.UUID) (*core.Card, error) {
	var c core.Card
	err := r.db.QueryRowContext(ctx, `
		SELECT card_id, wallet_id, wallet_name, name, color, due_day, closing_day, status, type, active
		FROM cards WHERE wallet_id = ? AND card_id = ?`,
		walletID, cardID,
	).Scan(&c.CardID, &c.WalletID, &c.WalletName, &c.Name, &c.Color, &c.DueDay, &c.ClosingDay, &c.Status, &c.Type, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context, walletID uuid.UUID) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT card_id, wallet_id, wallet_name, name, color, due_day, closing_day, status, type, active
		FROM cards WHERE wallet_id = ? ORDER BY created_at ASC`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var c core.Card
		if err := rows.Scan(&c.CardID, &c.WalletID, &c.WalletName, &c.Name, &c.Color, &c.DueDay, &c.ClosingDay, &c.Status, &c.Type, &c.Active); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) UpdateCard(ctx context.Context, c core.Card) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET name = ?, color = ?, due_day = ?, closing_day = ?, type = ?, updated_at = ?
		WHERE wallet_id = ? AND card_id = ?`,
		c.Name, c.Color, c.DueDay, c.ClosingDay, string(c.Type), time.Now().UTC(), c.WalletID, c.CardID,
	)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrCardNotFound
	}
	return nil
}

func (r *SQLiteRepository) UpdateCardStatus(ctx context.Context, walletID, cardID uuid.UUID, status core.CardStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET status = ?, updated_at = ?
		WHERE wallet_id = ? AND card_id = ?`,
		string(status), time.Now().UTC(), walletID, cardID,
	)
	if err != nil {
		return fmt.Errorf("update card status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrCardNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetCardActive(ctx context.Context, walletID, cardID uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET active = ?, updated_at = ?
		WHERE wallet_id = ? AND card_id = ?`,
		boolToInt(active), time.Now().UTC(), walletID, cardID,
	)
	if err != nil {
		return fmt.Errorf("set card active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrCardNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, walletID, cardID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cards WHERE wallet_id = ? AND card_id = ?`,
		walletID, cardID,
	)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrCardNotFound
	}
	return nil
}
