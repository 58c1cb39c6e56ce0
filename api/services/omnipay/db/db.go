package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrPaymentNotFound is returned when no payment row matches the id.
var ErrPaymentNotFound = errors.New("payment not found")

// Payment is a stored payment a purchase is initiated for.
type Payment struct {
	ID        string    `json:"id" validate:"required,max=64"`
	Amount    float64   `json:"amount" validate:"gt=0"`
	Currency  string    `json:"currency" validate:"required,len=3,alpha"`
	Email     string    `json:"email" validate:"omitempty,email"`
	UserID    string    `json:"userId" validate:"max=64"`
	CreatedAt time.Time `json:"createdAt"`
}

const schema = `
CREATE TABLE IF NOT EXISTS payment (
    id          TEXT PRIMARY KEY,
    amount      DOUBLE PRECISION NOT NULL,
    currency    CHAR(3) NOT NULL,
    email       TEXT NOT NULL DEFAULT '',
    user_id     TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store reads and writes payments.
type Store struct {
	db       *sql.DB
	validate *validator.Validate
}

func New(db *sql.DB) *Store {
	return &Store{db: db, validate: validator.New()}
}

// EnsureSchema creates the payment table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create payment table: %w", err)
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (Payment, error) {
	var p Payment
	err := s.db.QueryRowContext(ctx,
		`SELECT id, amount, currency, email, user_id, created_at FROM payment WHERE id = $1`, id,
	).Scan(&p.ID, &p.Amount, &p.Currency, &p.Email, &p.UserID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Payment{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
	}
	if err != nil {
		return Payment{}, fmt.Errorf("get payment %s: %w", id, err)
	}
	p.Currency = strings.TrimSpace(p.Currency)
	return p, nil
}

// InsertPayment validates and stores p. The currency is stored upper case.
func (s *Store) InsertPayment(ctx context.Context, p Payment) error {
	p.Currency = strings.ToUpper(p.Currency)
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid payment: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment (id, amount, currency, email, user_id) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Amount, p.Currency, p.Email, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert payment %s: %w", p.ID, err)
	}
	return nil
}

// DeletePayment removes a payment; deleting a missing id is not an error.
func (s *Store) DeletePayment(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM payment WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}
