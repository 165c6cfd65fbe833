package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/workoutware/internal/auth"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
}

type sessionStore interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	repo     usersRepo
	sessions sessionStore
}

func NewHandler(repo usersRepo, sessions sessionStore) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
	}
}

// readCredentials accepts both a JSON body and a form.
func readCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return creds, fmt.Errorf("unmarshal json params: %w", err)
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return creds, fmt.Errorf("parse form: %w", err)
	}
	return credentials{
		Username: r.Form.Get("username"),
		Email:    r.Form.Get("email"),
		Password: r.Form.Get("password"),
	}, nil
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Tracef("register: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}
	if err := ValidateRegistration(&creds.Username, &creds.Email, creds.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Create(ctx, User{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, ErrUserExists) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	} else if err != nil {
		log.Errorf("register user %s: %s", creds.Username, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	log.Infof("new user registered: %d", user.ID)

	respJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("register, marshal user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Tracef("login: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByIdentifier(ctx, creds.Username)
	if errors.Is(err, ErrUserNotFound) {
		log.Tracef("[username] failed login attempt for user: %s", creds.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("login, get user %s: %s", creds.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", creds.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	log.Trace("new login success")
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s", "userId": %d}`, token, user.ID))
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	token := auth.TokenFromRequest(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Trace("logout success")
	pkg.WriteTextResponseOK(w, "logged-out")
}
