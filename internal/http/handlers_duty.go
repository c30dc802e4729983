package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"contas/internal/services"
)

func (s *Server) handleListDuties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	take, _ := strconv.Atoi(q.Get("take"))
	skip, _ := strconv.Atoi(q.Get("skip"))

	duties, err := s.duties.ListDuties(r.Context(), userID(r), take, skip)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", toTransactionViews(duties))
}

func (s *Server) handleEvaluateDuty(w http.ResponseWriter, r *http.Request) {
	txID, err := s.transactionIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req struct {
		Approved    bool      `json:"approved"`
		NewWalletID uuid.UUID `json:"newWalletId"`
		NewCardID   uuid.UUID `json:"newCardId"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	resultID, err := s.duties.Evaluate(r.Context(), userID(r), services.EvaluateDutyRequest{
		TransactionID: txID,
		Approved:      req.Approved,
		NewWalletID:   req.NewWalletID,
		NewCardID:     req.NewCardID,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, map[string]any{"transactionId": resultID})
}
