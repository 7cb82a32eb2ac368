package announcement

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UpdateFields carries the subset of columns to change. Nil fields are not
// touched; a StartDate pointing at an empty string clears the column.
type UpdateFields struct {
	Message        *string
	StartDate      *string
	ExpirationDate *string
}

type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context) ([]*Announcement, error)
	UpdateFields(ctx context.Context, id string, fields UpdateFields) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Announcement) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.announcements").
		Columns("message", "start_date", "expiration_date", "created_by").
		Values(a.Message, a.StartDate, a.ExpirationDate, a.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create announcement query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "message", "start_date", "expiration_date", "created_by", "created_at").
		From("public.announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get announcement query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var a Announcement
	if err := row.Scan(&a.ID, &a.Message, &a.StartDate, &a.ExpirationDate, &a.CreatedBy, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get announcement failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Announcement, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "message", "start_date", "expiration_date", "created_by", "created_at").
		From("public.announcements").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list announcement query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements failed: %w", err)
	}
	defer rows.Close()

	var result []*Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Message, &a.StartDate, &a.ExpirationDate, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement failed: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements failed: %w", err)
	}

	return result, nil
}

func (r *pgxRepository) UpdateFields(ctx context.Context, id string, fields UpdateFields) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Update("public.announcements")

	if fields.Message != nil {
		builder = builder.Set("message", *fields.Message)
	}
	if fields.StartDate != nil {
		if *fields.StartDate == "" {
			builder = builder.Set("start_date", nil)
		} else {
			builder = builder.Set("start_date", *fields.StartDate)
		}
	}
	if fields.ExpirationDate != nil {
		builder = builder.Set("expiration_date", *fields.ExpirationDate)
	}

	query, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update announcement query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete announcement query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
