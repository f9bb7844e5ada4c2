package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"

	"github.com/ayush/todo-api/internal/models"
	"github.com/ayush/todo-api/internal/store"
)

// UserStore defines the interface for credential persistence. Password
// hashing and the account policy live behind it; handlers never see a hash.
type UserStore interface {
	CreateUser(ctx context.Context, email, username, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CheckPassword(ctx context.Context, email, password string) (bool, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *TokenIssuer
}

func NewHandler(users UserStore, tokens *TokenIssuer) *Handler {
	return &Handler{users: users, tokens: tokens}
}

func respond(w http.ResponseWriter, status int, body models.AuthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func fail(w http.ResponseWriter, status int, errs ...string) {
	respond(w, status, models.AuthResponse{Success: false, Errors: errs})
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Register creates a new user and returns a freshly issued token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid Payload")
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" || !validEmail(req.Email) {
		fail(w, http.StatusBadRequest, "Invalid Payload")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		var credErr *store.CredentialError
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			fail(w, http.StatusBadRequest, "Email already in use!")
		case errors.As(err, &credErr):
			fail(w, http.StatusBadRequest, credErr.Reasons...)
		default:
			log.Printf("register: create user: %v", err)
			fail(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("register: issue token: %v", err)
		fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond(w, http.StatusCreated, models.AuthResponse{Success: true, Token: token})
}

// Login authenticates a user and returns a token. An unknown email and a
// wrong password produce the identical response so the two cases are not
// distinguishable from outside.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid Payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Invalid Payload")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(w, http.StatusBadRequest, "Invalid Login Request")
		return
	}
	if err != nil {
		log.Printf("login: lookup user: %v", err)
		fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	ok, err := h.users.CheckPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("login: check password: %v", err)
		fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		fail(w, http.StatusBadRequest, "Invalid Login Request")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("login: issue token: %v", err)
		fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond(w, http.StatusOK, models.AuthResponse{Success: true, Token: token})
}
