package http

import (
	"net/http"

	"github.com/google/uuid"

	"contas/internal/core"
)

func (s *Server) walletIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("walletID"))
	if err != nil {
		return uuid.Nil, core.ErrInvalidObject
	}
	return id, nil
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	wallet, err := s.wallets.CreateWallet(r.Context(), userID(r), req.Name, req.Color)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, MsgSuccessfullyAdded, wallet)
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := s.wallets.ListWallets(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", wallets)
}

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	wallet, err := s.wallets.GetWallet(r.Context(), userID(r), walletID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", wallet)
}

func (s *Server) handleUpdateWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	if err := s.wallets.UpdateWallet(r.Context(), userID(r), walletID, req.Name, req.Color); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleSetWalletActive(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	if err := s.wallets.SetWalletActive(r.Context(), userID(r), walletID, req.Active); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.wallets.DeleteWallet(r.Context(), userID(r), walletID); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyDeleted, nil)
}
