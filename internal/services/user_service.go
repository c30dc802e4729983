package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"contas/internal/auth"
	"contas/internal/core"
	"contas/internal/mail"
	"contas/internal/storage"
)

type UserService struct {
	storage *storage.SQLiteRepository
	tokens  *auth.Manager
	mailer  Mailer
}

func NewUserService(storage *storage.SQLiteRepository, tokens *auth.Manager, mailer Mailer) *UserService {
	return &UserService{storage: storage, tokens: tokens, mailer: mailer}
}

type RegisterRequest struct {
	Name       string
	Email      string
	Password   string
	CellPhone  string
	Occupation string
}

func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*core.User, error) {
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return nil, core.ErrInvalidObject
	}

	_, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, core.ErrEmailInUse
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := core.User{
		UserID:       uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CellPhone:    req.CellPhone,
		Occupation:   req.Occupation,
		Active:       true,
	}
	if err := s.storage.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", user.UserID)
	return &user, nil
}

// Login verifies the credentials and issues a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *core.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", nil, core.ErrUserNotFound
	}

	token, err := s.tokens.Issue(user.UserID, user.Name, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*core.User, error) {
	return s.storage.GetUserByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, user core.User) error {
	if user.Name == "" {
		return core.ErrEmptyName
	}
	return s.storage.UpdateUser(ctx, user)
}

// RequestPasswordReset mails a one-time code to the account's address. An
// unknown email is reported to the caller the same as a known one would be,
// so the endpoint cannot be used to probe for accounts.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, core.ErrUserNotFound) {
		slog.InfoContext(ctx, "Password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	// The code is only persisted once the mail went out, a failed send
	// must not leave a live code behind.
	body, err := mail.RenderPasswordReset(user.Name, code)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, user.Email, "Redefinição de senha", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	return s.storage.UpdateUserResetCode(ctx, user.UserID, code)
}

func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if len(newPassword) < 6 || newPassword != confirmPassword {
		return core.ErrInvalidObject
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ResetCode == "" || user.ResetCode != code {
		return core.ErrInvalidCode
	}
	if auth.VerifyPassword(user.PasswordHash, newPassword) == nil {
		// The new password must differ from the current one.
		return core.ErrInvalidObject
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.storage.UpdateUserPassword(ctx, user.UserID, hash)
}

func (s *UserService) AddFamilyMember(ctx context.Context, userID uuid.UUID, name, email, kinship string) (*core.FamilyMember, error) {
	member := core.FamilyMember{
		FamilyID: uuid.New(),
		UserID:   userID,
		Name:     name,
		Email:    email,
		Kinship:  kinship,
		Active:   true,
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.InsertFamilyMember(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *UserService) ListFamilyMembers(ctx context.Context, userID uuid.UUID) ([]core.FamilyMember, error) {
	return s.storage.ListFamilyMembers(ctx, userID)
}

func (s *UserService) UpdateFamilyMember(ctx context.Context, member core.FamilyMember) error {
	if err := member.Validate(); err != nil {
		return err
	}
	return s.storage.UpdateFamilyMember(ctx, member)
}

func (s *UserService) RemoveFamilyMember(ctx context.Context, userID, familyID uuid.UUID) error {
	return s.storage.DeleteFamilyMember(ctx, userID, familyID)
}

const resetCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateResetCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = resetCodeAlphabet[int(b)%len(resetCodeAlphabet)]
	}
	return string(buf), nil
}
