package http

import (
	"net/http"

	"github.com/google/uuid"

	"contas/internal/core"
	"contas/internal/services"
)

type userView struct {
	UserID     uuid.UUID `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CellPhone  string    `json:"cellPhone,omitempty"`
	Occupation string    `json:"occupation,omitempty"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
}

func toUserView(u *core.User) userView {
	return userView{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		CellPhone:  u.CellPhone,
		Occupation: u.Occupation,
		Thumbnail:  u.Thumbnail,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		CellPhone  string `json:"cellPhone"`
		Occupation string `json:"occupation"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	user, err := s.users.Register(r.Context(), services.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		CellPhone:  req.CellPhone,
		Occupation: req.Occupation,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, MsgSuccessfullyAdded, toUserView(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	token, user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", map[string]any{
		"token": token,
		"user":  toUserView(user),
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	if err := s.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSendEmailSuccess, nil)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		Code            string `json:"code"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.Email, req.Code, req.Password, req.ConfirmPassword); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", toUserView(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		CellPhone  string `json:"cellPhone"`
		Occupation string `json:"occupation"`
		Thumbnail  string `json:"thumbnail"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	err := s.users.UpdateProfile(r.Context(), core.User{
		UserID:     userID(r),
		Name:       req.Name,
		CellPhone:  req.CellPhone,
		Occupation: req.Occupation,
		Thumbnail:  req.Thumbnail,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleAddFamilyMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Kinship string `json:"kinship"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	member, err := s.users.AddFamilyMember(r.Context(), userID(r), req.Name, req.Email, req.Kinship)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, MsgSuccessfullyAdded, member)
}

func (s *Server) handleListFamilyMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.users.ListFamilyMembers(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, "", members)
}

func (s *Server) handleUpdateFamilyMember(w http.ResponseWriter, r *http.Request) {
	familyID, err := uuid.Parse(r.PathValue("familyID"))
	if err != nil {
		s.fail(w, core.ErrInvalidObject)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Kinship string `json:"kinship"`
		Active  bool   `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	err = s.users.UpdateFamilyMember(r.Context(), core.FamilyMember{
		FamilyID: familyID,
		UserID:   userID(r),
		Name:     req.Name,
		Email:    req.Email,
		Kinship:  req.Kinship,
		Active:   req.Active,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyUpdated, nil)
}

func (s *Server) handleRemoveFamilyMember(w http.ResponseWriter, r *http.Request) {
	familyID, err := uuid.Parse(r.PathValue("familyID"))
	if err != nil {
		s.fail(w, core.ErrInvalidObject)
		return
	}

	if err := s.users.RemoveFamilyMember(r.Context(), userID(r), familyID); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, MsgSuccessfullyDeleted, nil)
}
