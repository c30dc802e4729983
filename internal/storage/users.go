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

func (r *SQLiteRepository) InsertUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, name, email, password_hash, cell_phone, occupation, thumbnail, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		u.UserID, u.Name, u.Email, u.PasswordHash, u.CellPhone, u.Occupation, u.Thumbnail,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*core.User, error) {
	return r.getUser(ctx, `
		SELECT user_id, name, email, password_hash, cell_phone, occupation, thumbnail, reset_code, active
		FROM users WHERE user_id = ? AND active = 1`, userID)
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return r.getUser(ctx, `
		SELECT user_id, name, email, password_hash, cell_phone, occupation, thumbnail, reset_code, active
		FROM users WHERE email = ? AND active = 1`, email)
}

func (r *SQLiteRepository) getUser(ctx context.Context, query string, arg any) (*core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.UserID, &u.Name, &u.Email, &u.PasswordHash,
		&u.CellPhone, &u.Occupation, &u.Thumbnail, &u.ResetCode, &u.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, u core.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = ?, cell_phone = ?, occupation = ?, thumbnail = ?, updated_at = ?
		WHERE user_id = ? AND active = 1`,
		u.Name, u.CellPhone, u.Occupation, u.Thumbnail, time.Now().UTC(), u.UserID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (r *SQLiteRepository) UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, reset_code = '', updated_at = ?
		WHERE user_id = ? AND active = 1`,
		passwordHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (r *SQLiteRepository) UpdateUserResetCode(ctx context.Context, userID uuid.UUID, code string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_code = ?, updated_at = ? WHERE user_id = ? AND active = 1`,
		code, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("update user reset code: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (r *SQLiteRepository) InsertFamilyMember(ctx context.Context, m core.FamilyMember) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO family_members (family_id, user_id, name, email, kinship, active)
		VALUES (?, ?, ?, ?, ?, 1)`,
		m.FamilyID, m.UserID, m.Name, m.Email, m.Kinship,
	)
	if err != nil {
		return fmt.Errorf("insert family member: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetFamilyMember(ctx context.Context, userID, familyID uuid.UUID) (*core.FamilyMember, error) {
	var m core.FamilyMember
	err := r.db.QueryRowContext(ctx, `
		SELECT family_id, user_id, name, email, kinship, active
		FROM family_members WHERE user_id = ? AND family_id = ?`,
		userID, familyID,
	).Scan(&m.FamilyID, &m.UserID, &m.Name, &m.Email, &m.Kinship, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrFamilyMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get family member: %w", err)
	}
	return &m, nil
}

func (r *SQLiteRepository) ListFamilyMembers(ctx context.Context, userID uuid.UUID) ([]core.FamilyMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT family_id, user_id, name, email, kinship, active
		FROM family_members WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	defer rows.Close()

	var members []core.FamilyMember
	for rows.Next() {
		var m core.FamilyMember
		if err := rows.Scan(&m.FamilyID, &m.UserID, &m.Name, &m.Email, &m.Kinship, &m.Active); err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *SQLiteRepository) UpdateFamilyMember(ctx context.Context, m core.FamilyMember) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE family_members SET name = ?, email = ?, kinship = ?, active = ?, updated_at = ?
		WHERE user_id = ? AND family_id = ?`,
		m.Name, m.Email, m.Kinship, boolToInt(m.Active), time.Now().UTC(), m.UserID, m.FamilyID,
	)
	if err != nil {
		return fmt.Errorf("update family member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrFamilyMemberNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteFamilyMember(ctx context.Context, userID, familyID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM family_members WHERE user_id = ? AND family_id = ?`,
		userID, familyID,
	)
	if err != nil {
		return fmt.Errorf("delete family member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrFamilyMemberNotFound
	}
	return nil
}
