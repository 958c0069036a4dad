// Package subscriber reads and creates rows in the subscribers table.
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultLimit caps a single newsletter run.
const DefaultLimit = 100

var (
	ErrAlreadySubscribed = errors.New("subscriber: email already subscribed")
	ErrFetchFailed       = errors.New("subscriber: failed to fetch active subscribers")
	ErrLookupFailed      = errors.New("subscriber: failed to look up email")
	ErrInsertFailed      = errors.New("subscriber: failed to insert subscriber")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Subscriber is an active newsletter recipient.
type Subscriber struct {
	Email            string
	UnsubscribeToken string
	SubscribedAt     time.Time
}

// Store is the pgx-backed subscriber gateway.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on top of an open pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const fetchActiveQuery = `
SELECT email, unsubscribe_token, subscribed_at
FROM subscribers
WHERE is_active = TRUE
ORDER BY subscribed_at ASC, id ASC
LIMIT $1`

// FetchActive returns up to limit active subscribers, earliest first.
// A non-positive limit falls back to DefaultLimit.
func (s *Store) FetchActive(ctx context.Context, limit int) ([]Subscriber, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.pool.Query(ctx, fetchActiveQuery, limit)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Subscriber, error) {
		var sub Subscriber
		err := row.Scan(&sub.Email, &sub.UnsubscribeToken, &sub.SubscribedAt)
		return sub, err
	})
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	return subs, nil
}

// Exists reports whether a row with exactly this email is present.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscribers WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return exists, nil
}

// Insert adds an active subscriber with a fresh unsubscribe token.
// A duplicate email yields ErrAlreadySubscribed.
func (s *Store) Insert(ctx context.Context, email string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscribers (email, unsubscribe_token, is_active, subscribed_at)
		 VALUES ($1, $2, TRUE, NOW())`,
		email, NewToken(),
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrAlreadySubscribed
	}
	return errors.Join(ErrInsertFailed, err)
}

// NewToken generates an opaque unsubscribe token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// String is used in log attributes; it never includes the token.
func (s Subscriber) String() string {
	return fmt.Sprintf("subscriber<%s>", s.Email)
}
