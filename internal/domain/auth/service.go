package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/db"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 12 * time.Hour

type Service struct {
	DB     db.Querier
	Secret string
}

func NewService(database db.Querier, secret string) *Service {
	return &Service{DB: database, Secret: secret}
}

type LoginResult struct {
	Token          string `json:"token"`
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var userID, orgID, role, passwordHash string
	err := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, role, password_hash
    FROM users
    WHERE lower(email) = $1 AND is_active
  `, email).Scan(&userID, &orgID, &role, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err := CheckPassword(passwordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
	}, tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, UserID: userID, OrganizationID: orgID, Role: role}, nil
}
