package provider

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type providerRepoPG struct{ pool *pgxpool.Pool }

func NewProviderRepoPG(pool *pgxpool.Pool) ProviderRepository { return &providerRepoPG{pool: pool} }

const providerCols = `id, first_name, last_name, specialty, rating, review_count, location, room, bio, is_active`

func scanProvider(row pgx.Row) (*Provider, error) {
	var p Provider
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Specialty, &p.Rating,
		&p.ReviewCount, &p.Location, &p.Room, &p.Bio, &p.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *providerRepoPG) Create(ctx context.Context, p *Provider) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO providers (id, first_name, last_name, specialty, rating, review_count, location, room, bio, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.FirstName, p.LastName, p.Specialty, p.Rating, p.ReviewCount,
		p.Location, p.Room, p.Bio, p.IsActive)
	return err
}

func (r *providerRepoPG) GetByID(ctx context.Context, id string) (*Provider, error) {
	return scanProvider(r.pool.QueryRow(ctx, `SELECT `+providerCols+` FROM providers WHERE id = $1`, id))
}

func (r *providerRepoPG) Search(ctx context.Context, f SearchFilter) ([]*Provider, error) {
	query := `SELECT ` + providerCols + ` FROM providers WHERE is_active = true`
	args := []any{}

	if q := f.Query; q != "" {
		args = append(args, "%"+q+"%")
		query += ` AND (first_name ILIKE $1 OR last_name ILIKE $1 OR specialty ILIKE $1)`
	}
	if f.Specialty != "" && f.Specialty != "All Specialties" {
		args = append(args, f.Specialty)
		query += ` AND specialty = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
