package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-api/internal/auth"
	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
	"github.com/BuzzLyutic/todo-api/internal/service"
	"github.com/BuzzLyutic/todo-api/pkg/respond"
)

type AuthHandler struct {
	service *service.AuthService
	tokens  *auth.Manager
	logger  *zap.Logger
}

func NewAuthHandler(srv *service.AuthService, tokens *auth.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: srv,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.service.Register(r.Context(), creds)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if !h.startSession(w, r, user) {
		return
	}
	respond.JSON(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.service.Login(r.Context(), creds)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if !h.startSession(w, r, user) {
		return
	}
	respond.JSON(w, r, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredCookie())
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, user)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user model.User) bool {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return false
	}
	http.SetCookie(w, h.tokens.SessionCookie(token))
	return true
}

func (h *AuthHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrBadCredentials):
		respond.Error(w, r, http.StatusBadRequest, "incorrect password")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (model.Credentials, bool) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return model.Credentials{}, false
	}

	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return model.Credentials{}, false
	}
	return creds, true
}
