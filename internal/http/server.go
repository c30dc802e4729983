package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"contas/internal/auth"
	applog "contas/internal/log"
	"contas/internal/services"
)

type Server struct {
	http.Server

	users        *services.UserService
	wallets      *services.WalletService
	cards        *services.CardService
	transactions *services.TransactionService
	duties       *services.DutyService
	tokens       *auth.Manager
	limiter      *rateLimiter
	prod         bool
}

func NewServer(addr string, users *services.UserService, wallets *services.WalletService, cards *services.CardService, transactions *services.TransactionService, duties *services.DutyService, tokens *auth.Manager, prod bool) *Server {
	mux := http.NewServeMux()
	logger := &applog.Logger{Logger: slog.Default()}

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      applog.Middleware(logger.WithComponent("http"))(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		users:        users,
		wallets:      wallets,
		cards:        cards,
		transactions: transactions,
		duties:       duties,
		tokens:       tokens,
		limiter:      newRateLimiter(60),
		prod:         prod,
	}

	// The unauthenticated routes carry the per-IP limiter; every /api route
	// gets the security headers and a completion log line.
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return s.withRequestLog(s.withRateLimit(s.withSecurityHeaders(h)))
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return s.withRequestLog(s.withSecurityHeaders(s.withAuth(h)))
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/register", public(s.handleRegister))
	mux.HandleFunc("POST /api/login", public(s.handleLogin))
	mux.HandleFunc("POST /api/password/forgot", public(s.handleForgotPassword))
	mux.HandleFunc("POST /api/password/reset", public(s.handleResetPassword))

	mux.HandleFunc("GET /api/me", authed(s.handleGetProfile))
	mux.HandleFunc("PUT /api/me", authed(s.handleUpdateProfile))

	mux.HandleFunc("POST /api/family", authed(s.handleAddFamilyMember))
	mux.HandleFunc("GET /api/family", authed(s.handleListFamilyMembers))
	mux.HandleFunc("PUT /api/family/{familyID}", authed(s.handleUpdateFamilyMember))
	mux.HandleFunc("DELETE /api/family/{familyID}", authed(s.handleRemoveFamilyMember))

	mux.HandleFunc("POST /api/wallets", authed(s.handleCreateWallet))
	mux.HandleFunc("GET /api/wallets", authed(s.handleListWallets))
	mux.HandleFunc("GET /api/wallets/{walletID}", authed(s.handleGetWallet))
	mux.HandleFunc("PUT /api/wallets/{walletID}", authed(s.handleUpdateWallet))
	mux.HandleFunc("PATCH /api/wallets/{walletID}/active", authed(s.handleSetWalletActive))
	mux.HandleFunc("DELETE /api/wallets/{walletID}", authed(s.handleDeleteWallet))

	mux.HandleFunc("POST /api/wallets/{walletID}/cards", authed(s.handleCreateCard))
	mux.HandleFunc("GET /api/wallets/{walletID}/cards", authed(s.handleListCards))
	mux.HandleFunc("GET /api/wallets/{walletID}/cards/{cardID}", authed(s.handleGetCard))
	mux.HandleFunc("PUT /api/wallets/{walletID}/cards/{cardID}", authed(s.handleUpdateCard))
	mux.HandleFunc("PATCH /api/wallets/{walletID}/cards/{cardID}/payment", authed(s.handleUpdatePayment))
	mux.HandleFunc("PATCH /api/wallets/{walletID}/cards/{cardID}/active", authed(s.handleSetCardActive))
	mux.HandleFunc("DELETE /api/wallets/{walletID}/cards/{cardID}", authed(s.handleDeleteCard))

	mux.HandleFunc("POST /api/transactions", authed(s.handleInsertTransaction))
	mux.HandleFunc("GET /api/transactions/{transactionID}", authed(s.handleGetTransaction))
	mux.HandleFunc("GET /api/transactions/{transactionID}/installments", authed(s.handleListInstallments))
	mux.HandleFunc("DELETE /api/transactions/{transactionID}", authed(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/cards/{cardID}/transactions", authed(s.handleListCardTransactions))

	mux.HandleFunc("GET /api/duties", authed(s.handleListDuties))
	mux.HandleFunc("POST /api/duties/{transactionID}/evaluate", authed(s.handleEvaluateDuty))

	return s
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
