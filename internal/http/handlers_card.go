package http

import (
	"net/http"

	"github.com/google/uuid"

	"contas/internal/core"
	"contas/internal/services"
)

type cardView struct {
	CardID     uuid.UUID       `json:"cardId"`
	WalletID   uuid.UUID       `json:"walletId"`
	WalletName string          `json:"walletName"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	DueDay     int             `json:"dueDay"`
	ClosingDay int             `json:"closingDay"`
	Status     core.CardStatus `json:"status"`
	StatusDesc string          `json:"statusDescription"`
	Type       core.CardType   `json:"type"`
	TypeDesc   string          `json:"typeDescription"`
	Active     bool            `json:"active"`
}

func toCardView(c core.Card) cardView {
	return cardView{
		CardID:     c.CardID,
		WalletID:   c.WalletID,
		WalletName: c.WalletName,
		Name:       c.Name,
		Color:      c.Color,
		DueDay:     c.DueDay,
		ClosingDay: c.ClosingDay,
		Status:     c.Status,
		StatusDesc: c.Status.Label(),
		Type:       c.Type,
		TypeDesc:   c.Type.Label(),
		Active:     c.Active,
	}
}

func (s *Server) cardIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("cardID"))
	if err != nil {
		return uuid.Nil, core.ErrInvalidObject
	}
	return id, nil
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req struct {
		Name   string        `json:"name"`
		Color  string        `json:"color"`
		DueDay int           `json:"dueDay"`
		Type   core.CardType `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	card, err := s.cards.CreateCard(r.Context(), userID(r), walletID, services.CreateCardRequest{
		Name:   req.Name,
		Color:  req.Color,
		DueDay: req.DueDay,
		Type:   req.Type,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, MsgSuccessfullyAdded, toCardView(*card))
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	cards, err := s.cards.ListCards(r.Context(), walletID)
	if err != nil {
		s.fail(w, err)
		return
	}

	views := make([]cardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, toCardView(c))
	}
	s.ok(w, http.StatusOK, "", views)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	cardID, err := s.cardIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	card, err := s.cards.GetCard(r.Context(), walletID, cardID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", toCardView(*card))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	cardID, err := s.cardIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req struct {
		Name   string        `json:"name"`
		Color  string        `json:"color"`
		DueDay int           `json:"dueDay"`
		Type   core.CardType `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	card, err := s.cards.UpdateCard(r.Context(), walletID, cardID, services.CreateCardRequest{
		Name:   req.Name,
		Color:  req.Color,
		DueDay: req.DueDay,
		Type:   req.Type,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, toCardView(*card))
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	cardID, err := s.cardIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req struct {
		Status core.CardStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	if err := s.cards.UpdatePayment(r.Context(), walletID, cardID, req.Status); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleSetCardActive(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	cardID, err := s.cardIDFromPath(r)
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

	if err := s.cards.SetCardActive(r.Context(), walletID, cardID, req.Active); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	walletID, err := s.walletIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	cardID, err := s.cardIDFromPath(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.cards.DeleteCard(r.Context(), walletID, cardID); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyDeleted, nil)
}
