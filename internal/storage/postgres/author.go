package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"payout_manager/internal/domain"
)

type AuthorStore struct {
	db *sqlx.DB
}

func NewAuthorStore(db *sqlx.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

func (s *AuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	var author domain.Author
	query := `SELECT id, display_name, role FROM authors WHERE id = $1`

	err := s.db.GetContext(ctx, &author, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("author %d: %w", id, domain.ErrAuthorNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// ListByRoles returns authors holding any of the given roles, ordered by ID
// so payout cycles process authors in a stable order.
func (s *AuthorStore) ListByRoles(ctx context.Context, roles []string) ([]domain.Author, error) {
	query := `
		SELECT id, display_name, role
		FROM authors
		WHERE role = ANY($1)
		ORDER BY id`

	var authors []domain.Author
	err := s.db.SelectContext(ctx, &authors, query, pq.Array(roles))
	return authors, err
}
