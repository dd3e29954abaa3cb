package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"fivec_analysis/internal/config/connections/postgres"
)

type APIToken struct {
	ID        int64
	TokenHash string
	UserID    int64
	ExpiresAt *time.Time
}

// TokenRepo looks bearer tokens up by their sha256 hash. Plain tokens are
// never stored.
type TokenRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewTokenRepo(pg *postgres.Postgres, table string) *TokenRepo {
	if table == "" {
		table = "api_tokens"
	}
	return &TokenRepo{pg: pg, table: table}
}

func (r *TokenRepo) FindByPlainToken(ctx context.Context, plainToken string) (*APIToken, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return nil, errors.New("empty token")
	}

	sum := sha256.Sum256([]byte(plainToken))
	hash := hex.EncodeToString(sum[:])

	query := `
		SELECT id, token_hash, user_id, expires_at
		FROM ` + r.table + `
		WHERE token_hash = $1
		  AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY created_at DESC
		LIMIT 1`

	var tok APIToken
	err := r.pg.Pool.QueryRow(ctx, query, hash, time.Now()).Scan(
		&tok.ID, &tok.TokenHash, &tok.UserID, &tok.ExpiresAt,
	)
	if err != nil {
		return nil, errors.New("token not found")
	}
	return &tok, nil
}
