package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cinelist/cinelist-server/internal/domain"
	"github.com/cinelist/cinelist-server/internal/store"
)

// LoadUser returns the stored snapshot for id.
func (s *Store) LoadUser(ctx context.Context, id string) (domain.User, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM users WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrUserNotFound.WithCause(fmt.Errorf("user %q", id))
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user %s: %w", id, err)
	}

	var u domain.User
	if err := json.Unmarshal([]byte(doc), &u); err != nil {
		return domain.User{}, fmt.Errorf("decode user %s: %w", id, err)
	}
	if !domain.PinnedPrefixHolds(u.Lists) {
		u.Lists = domain.NormalizeOrder(u.Lists)
	}
	return u, nil
}

// SaveUser upserts the snapshot and returns the canonical copy.
func (s *Store) SaveUser(ctx context.Context, u domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	if u.ID == "" {
		return domain.User{}, store.ErrInvalidUser
	}

	out := store.Canonicalize(u, s.now)
	doc, err := json.Marshal(out)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode user %s: %w", out.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email_lower, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email_lower = excluded.email_lower,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		out.ID,
		strings.ToLower(strings.TrimSpace(out.Email)),
		string(doc),
		formatTime(out.CreatedAt),
		formatTime(out.UpdatedAt),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("save user %s: %w", out.ID, err)
	}
	return out, nil
}

// ListUsers returns every stored user ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, document FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		var u domain.User
		if err := json.Unmarshal([]byte(doc), &u); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", id, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
