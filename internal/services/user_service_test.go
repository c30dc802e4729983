package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contas/internal/core"
)

func TestRegister_RejectsInvalidInput(t *testing.T) {
	s := NewUserService(nil, nil, nil)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"empty name", RegisterRequest{Email: "a@b.com", Password: "secret1"}},
		{"empty email", RegisterRequest{Name: "João", Password: "secret1"}},
		{"short password", RegisterRequest{Name: "João", Email: "a@b.com", Password: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, core.ErrInvalidObject)
		})
	}
}

func TestResetPassword_RejectsMismatchedConfirmation(t *testing.T) {
	s := NewUserService(nil, nil, nil)

	err := s.ResetPassword(context.Background(), "a@b.com", "CODE1234", "secret1", "secret2")
	assert.ErrorIs(t, err, core.ErrInvalidObject)
}

func TestGenerateResetCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		code, err := generateResetCode()
		require.NoError(t, err)
		require.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(resetCodeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes must not repeat every time")
}
