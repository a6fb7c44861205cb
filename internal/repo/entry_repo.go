package repo

import (
	"context"

	dom "github.com/Yunxiang777/accounts/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EntryRepo provides ledger entry persistence. Every write touches
// exactly one row; no multi-step transactions are needed.
type EntryRepo interface {
	Create(ctx context.Context, e dom.Entry) (dom.Entry, error)
	GetByID(ctx context.Context, id int64) (dom.Entry, error)
	List(ctx context.Context) ([]dom.Entry, error)
	Update(ctx context.Context, id int64, e dom.Entry) (dom.Entry, error)
	Delete(ctx context.Context, id int64) error
}

// PGEntryRepo implements EntryRepo with Postgres.
type PGEntryRepo struct {
	db *pgxpool.Pool
}

// NewPGEntryRepo returns a new PGEntryRepo.
func NewPGEntryRepo(db *pgxpool.Pool) *PGEntryRepo {
	return &PGEntryRepo{db: db}
}

func (r *PGEntryRepo) Create(ctx context.Context, e dom.Entry) (dom.Entry, error) {
	query := `
		INSERT INTO entries (description, amount, entry_date, sign)
		VALUES ($1, $2, $3, $4)
		RETURNING id, description, amount, entry_date, sign, created_at, updated_at`
	var out dom.Entry
	err := r.db.QueryRow(ctx, query, e.Description, e.Amount, e.Date, string(e.Sign)).Scan(
		&out.ID, &out.Description, &out.Amount, &out.Date, &out.Sign,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGEntryRepo) GetByID(ctx context.Context, id int64) (dom.Entry, error) {
	query := `
		SELECT id, description, amount, entry_date, sign, created_at, updated_at
		FROM entries WHERE id = $1`
	var e dom.Entry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Description, &e.Amount, &e.Date, &e.Sign,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// List returns all entries, newest ledger day first (display order).
func (r *PGEntryRepo) List(ctx context.Context) ([]dom.Entry, error) {
	query := `
		SELECT id, description, amount, entry_date, sign, created_at, updated_at
		FROM entries ORDER BY entry_date DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Entry
	for rows.Next() {
		var e dom.Entry
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Date, &e.Sign,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update replaces the mutable fields of one entry. The service merges
// the sparse patch onto the stored record before calling this.
func (r *PGEntryRepo) Update(ctx context.Context, id int64, e dom.Entry) (dom.Entry, error) {
	query := `
		UPDATE entries SET description = $2, amount = $3, entry_date = $4, sign = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, description, amount, entry_date, sign, created_at, updated_at`
	var out dom.Entry
	err := r.db.QueryRow(ctx, query, id, e.Description, e.Amount, e.Date, string(e.Sign)).Scan(
		&out.ID, &out.Description, &out.Amount, &out.Date, &out.Sign,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGEntryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
