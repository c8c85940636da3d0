package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

// Repository is an append-only store of ledger entries. Append assigns the
// identifier and timestamp when they are unset; entries are never updated or
// deleted. Listings are newest-first, truncated to limit when limit > 0.
type Repository interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]Entry, error)
	ListByWallet(ctx context.Context, walletID string, limit int) ([]Entry, error)
}

// PostgresRepository stores ledger entries in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed ledger repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts an immutable ledger entry.
func (r *PostgresRepository) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	entryID, err := uuid.Parse(e.ID)
	if err != nil {
		return Entry{}, err
	}
	accountID, err := uuid.Parse(e.AccountID)
	if err != nil {
		return Entry{}, err
	}

	_, err = r.db.Exec(ctx, `INSERT INTO ledger_entries
        (id, account_id, from_wallet_id, to_wallet_id, kind, amount, from_currency, to_currency, rate, description, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		entryID, accountID,
		nullUUID(e.FromWalletID), nullUUID(e.ToWalletID),
		string(e.Kind), e.Amount,
		nullCode(e.FromCurrency), nullCode(e.ToCurrency),
		e.Rate, e.Description, e.Status, e.CreatedAt.UTC())
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

const selectEntry = `SELECT id, account_id, from_wallet_id, to_wallet_id, kind, amount,
    from_currency, to_currency, rate, description, status, created_at FROM ledger_entries`

// ListByAccount returns the account's entries, newest first.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]Entry, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	query := selectEntry + ` WHERE account_id = $1 ORDER BY created_at DESC, seq DESC`
	args := []any{id}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

// ListByWallet returns entries where the wallet is source or destination,
// newest first.
func (r *PostgresRepository) ListByWallet(ctx context.Context, walletID string, limit int) ([]Entry, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return nil, fmt.Errorf("parse wallet id: %w", err)
	}
	query := selectEntry + ` WHERE from_wallet_id = $1 OR to_wallet_id = $1 ORDER BY created_at DESC, seq DESC`
	args := []any{id}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		id           uuid.UUID
		accountID    uuid.UUID
		fromWallet   *uuid.UUID
		toWallet     *uuid.UUID
		kind         string
		fromCurrency *string
		toCurrency   *string
		createdAt    time.Time
		e            Entry
	)
	err := row.Scan(&id, &accountID, &fromWallet, &toWallet, &kind, &e.Amount,
		&fromCurrency, &toCurrency, &e.Rate, &e.Description, &e.Status, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, errors.New("ledger entry not found")
		}
		return Entry{}, err
	}
	e.ID = id.String()
	e.AccountID = accountID.String()
	if fromWallet != nil {
		e.FromWalletID = fromWallet.String()
	}
	if toWallet != nil {
		e.ToWalletID = toWallet.String()
	}
	e.Kind = Kind(kind)
	if fromCurrency != nil {
		e.FromCurrency = currency.Code(*fromCurrency)
	}
	if toCurrency != nil {
		e.ToCurrency = currency.Code(*toCurrency)
	}
	e.CreatedAt = createdAt.UTC()
	return e, nil
}

func nullUUID(id string) *uuid.UUID {
	if id == "" {
		return nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return &parsed
}

func nullCode(code currency.Code) *string {
	if code == "" {
		return nil
	}
	s := string(code)
	return &s
}
