package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"transitbook/internal/auth"
	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to every staff account.
const MinPasswordLength = 8

type AuthService struct {
	DB        *sql.DB
	Secret    []byte
	TTL       time.Duration
	RequestID string
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (s AuthService) users() repositories.UserRepository {
	return repositories.UserRepository{DB: s.DB}
}

// Login checks the bcrypt hash and issues a token.
func (s AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "username and password are required"}
	}

	u, err := s.users().GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return LoginResult{}, domain.UnauthorizedError{Msg: "wrong username or password"}
	}
	if err != nil {
		return LoginResult{}, domain.Storage("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login_failed", "user="+username)
		return LoginResult{}, domain.UnauthorizedError{Msg: "wrong username or password"}
	}

	token, exp, err := auth.Issue(s.Secret, u.ID, u.Username, u.Role, s.TTL)
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	out, err := s.users().List(ctx)
	return out, repoErr("user", "list users", err)
}

// CreateUser stores a staff account with a bcrypt-hashed password.
func (s AuthService) CreateUser(ctx context.Context, username, password string, role domain.Role) (models.User, error) {
	u := models.User{Username: strings.TrimSpace(username), Role: role}
	if err := required("username", u.Username); err != nil {
		return u, err
	}
	if len(password) < MinPasswordLength {
		return u, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if !role.Valid() {
		return u, domain.ValidationError{Field: "role", Msg: "must be admin or operator"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return u, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	id, err := s.users().Create(ctx, u)
	if err != nil {
		return u, repoErr("user", "create user", err)
	}
	u.ID = id
	u.CreatedAt = time.Now()
	utils.LogEvent(s.RequestID, "auth", "create_user", fmt.Sprintf("user_id=%d role=%s", id, role))
	return u, nil
}

// EnsureBootstrapAdmin creates the first admin when the users table is empty.
// Nothing happens when credentials are missing or users already exist.
func (s AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return false, nil
	}
	n, err := s.users().Count(ctx)
	if err != nil {
		return false, domain.Storage("count users", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.CreateUser(ctx, username, password, domain.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
