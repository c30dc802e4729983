package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"contas/internal/core"
	"contas/internal/services"
)

type transactionView struct {
	TransactionID       uuid.UUID            `json:"transactionId"`
	Name                string               `json:"name"`
	PurchaseDate        time.Time            `json:"purchaseDate"`
	ExpirationDate      time.Time            `json:"expirationDate"`
	CashFlow            core.CashFlow        `json:"cashFlow"`
	CashFlowDesc        string               `json:"cashFlowDescription"`
	Type                core.PaymentType     `json:"type"`
	TypeDesc            string               `json:"typeDescription"`
	QuantityInstallment int                  `json:"quantityInstallment"`
	CurrentInstallment  int                  `json:"currentInstallment"`
	ValueCents          int64                `json:"valueCents"`
	ValueFormatted      string               `json:"valueFormatted"`
	PaymentDetails      *core.PaymentDetails `json:"paymentDetails,omitempty"`
	Assigned            *core.Assigned       `json:"assigned,omitempty"`
	CreatedBy           uuid.UUID            `json:"createdBy"`
}

func toTransactionView(t core.Transaction) transactionView {
	return transactionView{
		TransactionID:       t.TransactionID,
		Name:                t.Name,
		PurchaseDate:        t.PurchaseDate,
		ExpirationDate:      t.ExpirationDate,
		CashFlow:            t.CashFlow,
		CashFlowDesc:        t.CashFlow.Label(),
		Type:                t.Type,
		TypeDesc:            t.Type.Label(),
		QuantityInstallment: t.Repetition.QuantityInstallment,
		CurrentInstallment:  t.Repetition.CurrentInstallment,
		ValueCents:          t.Repetition.ValueInstallment.Cents,
		ValueFormatted:      t.Repetition.ValueInstallment.BRL(),
		PaymentDetails:      t.PaymentDetails,
		Assigned:            t.Assigned,
		CreatedBy:           t.CreatedBy,
	}
}

func toTransactionViews(transactions []core.Transaction) []transactionView {
	views := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, toTransactionView(t))
	}
	return views
}

func (s *Server) handleInsertTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WalletID      uuid.UUID        `json:"walletId"`
		CardID        uuid.UUID        `json:"cardId"`
		Name          string           `json:"name"`
		CashFlow      core.CashFlow    `json:"cashFlow"`
		Type          core.PaymentType `json:"type"`
		PurchaseDate  time.Time        `json:"purchaseDate"`
		Quantity      int              `json:"quantityInstallment"`
		StartIndex    int              `json:"currentInstallment"`
		Value         string           `json:"value"`
		AssigneeID    *uuid.UUID       `json:"assigneeId"`
		AssigneeEmail string           `json:"assigneeEmail"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	cents, err := core.ParseDecimalToCents(req.Value)
	if err != nil {
		s.fail(w, core.ErrInvalidAmount)
		return
	}

	txID, err := s.transactions.InsertTransaction(r.Context(), userID(r), services.InsertTransactionRequest{
		WalletID:     req.WalletID,
		CardID:       req.CardID,
		Name:         req.Name,
		CashFlow:     req.CashFlow,
		Type:         req.Type,
		PurchaseDate: req.PurchaseDate,
		Repetition: core.Repetition{
			QuantityInstallment: req.Quantity,
			CurrentInstallment:  req.StartIndex,
			ValueInstallment:    core.Money{Cents: cents},
		},
		Assignment: services.AssignmentRequest{
			FamilyID: req.AssigneeID,
			Email:    req.AssigneeEmail,
		},
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, MsgSuccessfullyAdded, map[string]any{"transactionId": txID})
}

func (s *Server) transactionIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("transactionID"))
	if err != nil {
		return uuid.Nil, core.ErrInvalidObject
	}
	return id, nil
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txID, err := s.transactionIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	transaction, err := s.transactions.GetTransaction(r.Context(), txID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", toTransactionView(*transaction))
}

func (s *Server) handleListInstallments(w http.ResponseWriter, r *http.Request) {
	txID, err := s.transactionIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	installments, err := s.transactions.ListInstallments(r.Context(), txID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", toTransactionViews(installments))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID, err := s.transactionIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.transactions.DeleteTransaction(r.Context(), txID); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyDeleted, nil)
}

func (s *Server) handleListCardTransactions(w http.ResponseWriter, r *http.Request) {
	cardID, err := s.cardIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	q := r.URL.Query()
	take, _ := strconv.Atoi(q.Get("take"))
	skip, _ := strconv.Atoi(q.Get("skip"))

	var assignedID *uuid.UUID
	if raw := q.Get("assignedId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.fail(w, core.ErrInvalidObject)
			return
		}
		assignedID = &id
	}

	transactions, err := s.transactions.ListByCard(r.Context(), cardID, assignedID, q.Get("search"), take, skip)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", toTransactionViews(transactions))
}
