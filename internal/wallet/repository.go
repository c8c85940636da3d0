package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

// ErrNotFound indicates the referenced wallet does not exist.
var ErrNotFound = errors.New("wallet not found")

// Repository persists wallet records. Create fails with
// ErrDuplicateCurrency when the account already holds a wallet in the same
// currency. UpdateBalance replaces the balance field wholesale; callers are
// expected to have read the current value and to hold whatever serialization
// the operation requires.
type Repository interface {
	Create(ctx context.Context, w Wallet) error
	Get(ctx context.Context, id string) (Wallet, error)
	ListByAccount(ctx context.Context, accountID string) ([]Wallet, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	accountID, err := uuid.Parse(w.AccountID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, account_id, currency, name, balance, is_primary, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		walletID, accountID, string(w.Currency), w.Name, w.Balance, w.Primary, w.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCurrency
	}
	return err
}

// Get fetches a wallet by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Wallet, error) {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, account_id, currency, name, balance, is_primary, created_at
        FROM wallets WHERE id = $1`, walletID)
	return scanWallet(row)
}

// ListByAccount returns the account's wallets in creation order.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]Wallet, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	rows, err := r.db.Query(ctx, `SELECT id, account_id, currency, name, balance, is_primary, created_at
        FROM wallets WHERE account_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// UpdateBalance replaces the wallet's balance.
func (r *PostgresRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE wallets SET balance = $1 WHERE id = $2`, balance, walletID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var (
		id        uuid.UUID
		accountID uuid.UUID
		code      string
		createdAt time.Time
		w         Wallet
	)
	if err := row.Scan(&id, &accountID, &code, &w.Name, &w.Balance, &w.Primary, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.ID = id.String()
	w.AccountID = accountID.String()
	w.Currency = currency.Code(code)
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
