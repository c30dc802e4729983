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

const transactionColumns = `
	transaction_id, name, purchase_date, expiration_date, cash_flow, payment_type,
	quantity_installment, current_installment, value_installment_cents,
	payment_id, payment_name, payment_color,
	assigned_id, assigned_name, assigned_email,
	created_by, created_at, active`

// InsertTransaction persists a single installment record.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) error {
	var paymentID, paymentName, paymentColor any
	if t.PaymentDetails != nil {
		paymentID = t.PaymentDetails.ID
		paymentName = t.PaymentDetails.Name
		paymentColor = t.PaymentDetails.Color
	}
	var assignedID, assignedName, assignedEmail any
	if t.Assigned != nil {
		assignedID = t.Assigned.AssignedID
		assignedName = t.Assigned.Name
		assignedEmail = t.Assigned.Email
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (
			transaction_id, name, purchase_date, expiration_date, cash_flow, payment_type,
			quantity_installment, current_installment, value_installment_cents,
			payment_id, payment_name, payment_color,
			assigned_id, assigned_name, assigned_email,
			created_by, created_at, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		t.TransactionID, t.Name, t.PurchaseDate.UTC(), t.ExpirationDate.UTC(),
		string(t.CashFlow), string(t.Type),
		t.Repetition.QuantityInstallment, t.Repetition.CurrentInstallment, t.Repetition.ValueInstallment.Cents,
		paymentID, paymentName, paymentColor,
		assignedID, assignedName, assignedEmail,
		t.CreatedBy, t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetTransactionByID returns the first installment record of a series, the one
// carrying the creator and the purchase metadata shared by all its siblings.
func (r *SQLiteRepository) GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions WHERE transaction_id = ? AND active = 1
		ORDER BY created_at ASC, current_installment ASC LIMIT 1`,
		transactionID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListInstallments returns every record of a series in insertion order.
func (r *SQLiteRepository) ListInstallments(ctx context.Context, transactionID uuid.UUID) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions WHERE transaction_id = ? AND active = 1
		ORDER BY created_at ASC, current_installment ASC`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	return collectTransactions(rows)
}

// ListByPaymentID pages through the installments charged to one card in
// creation order, optionally narrowed by a name substring or a responsible
// party.
func (r *SQLiteRepository) ListByPaymentID(ctx context.Context, paymentID uuid.UUID, assignedID *uuid.UUID, search string, take, skip int) ([]core.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE payment_id = ? AND active = 1`
	args := []any{paymentID}
	if assignedID != nil {
		query += ` AND assigned_id = ?`
		args = append(args, *assignedID)
	}
	if search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at ASC, current_installment ASC LIMIT ? OFFSET ?`
	args = append(args, take, skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions by payment: %w", err)
	}
	return collectTransactions(rows)
}

// ListAssignedDuties returns one record per series assigned to the given
// party. Self-labeled records never show up as duties.
func (r *SQLiteRepository) ListAssignedDuties(ctx context.Context, assignedID uuid.UUID, take, skip int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions WHERE assigned_id = ? AND assigned_name != ? AND active = 1
		GROUP BY transaction_id
		ORDER BY created_at ASC LIMIT ? OFFSET ?`,
		assignedID, core.AssignedSelfLabel, take, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list assigned duties: %w", err)
	}
	return collectTransactions(rows)
}

// ListPendingDuties feeds the reminder worker: one record per series still
// assigned to somebody other than its creator, oldest first.
func (r *SQLiteRepository) ListPendingDuties(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions WHERE assigned_id IS NOT NULL AND assigned_name != ? AND active = 1
		GROUP BY transaction_id
		ORDER BY purchase_date ASC LIMIT ?`,
		core.AssignedSelfLabel, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending duties: %w", err)
	}
	return collectTransactions(rows)
}

// UpdateAssignedByTransactionID rewrites the responsible party on every
// record of a series at once.
func (r *SQLiteRepository) UpdateAssignedByTransactionID(ctx context.Context, transactionID uuid.UUID, assigned core.Assigned) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET assigned_id = ?, assigned_name = ?, assigned_email = ?, updated_at = ?
		WHERE transaction_id = ? AND active = 1`,
		assigned.AssignedID, assigned.Name, assigned.Email, time.Now().UTC(), transactionID,
	)
	if err != nil {
		return fmt.Errorf("update assigned: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, transactionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET active = 0, updated_at = ?
		WHERE transaction_id = ? AND active = 1`,
		time.Now().UTC(), transactionID,
	)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*core.Transaction, error) {
	var (
		t             core.Transaction
		paymentID     sql.NullString
		paymentName   sql.NullString
		paymentColor  sql.NullString
		assignedID    sql.NullString
		assignedName  sql.NullString
		assignedEmail sql.NullString
	)
	err := row.Scan(
		&t.TransactionID, &t.Name, &t.PurchaseDate, &t.ExpirationDate, &t.CashFlow, &t.Type,
		&t.Repetition.QuantityInstallment, &t.Repetition.CurrentInstallment, &t.Repetition.ValueInstallment.Cents,
		&paymentID, &paymentName, &paymentColor,
		&assignedID, &assignedName, &assignedEmail,
		&t.CreatedBy, &t.CreatedAt, &t.Active,
	)
	if err != nil {
		return nil, err
	}

	if paymentID.Valid {
		id, err := uuid.Parse(paymentID.String)
		if err != nil {
			return nil, fmt.Errorf("parse payment id: %w", err)
		}
		t.PaymentDetails = &core.PaymentDetails{ID: id, Name: paymentName.String, Color: paymentColor.String}
	}
	if assignedID.Valid {
		id, err := uuid.Parse(assignedID.String)
		if err != nil {
			return nil, fmt.Errorf("parse assigned id: %w", err)
		}
		t.Assigned = &core.Assigned{AssignedID: id, Name: assignedName.String, Email: assignedEmail.String}
	}
	return &t, nil
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	defer rows.Close()

	var transactions []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}
