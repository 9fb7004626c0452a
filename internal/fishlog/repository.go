package fishlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

// Repository defines data access methods for catch logs.
type Repository interface {
	Create(ctx context.Context, l *Log) error
	GetByID(ctx context.Context, id string) (*Log, error)
	List(ctx context.Context, filter Filter) ([]*Log, int, error)
	Update(ctx context.Context, l *Log) error
	Delete(ctx context.Context, id string) error
	SetPictureURL(ctx context.Context, id string, url string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var logColumns = []string{
	"id", "user_id", "fish_name", "picture_url", "comment", "size", "weight", "location",
	"catch_date", "released", "created_at",
}

func scanLog(row pgx.Row, extra ...any) (*Log, error) {
	var l Log
	var catchDate time.Time
	dest := []any{
		&l.ID, &l.UserID, &l.FishName, &l.PictureURL, &l.Comment, &l.Size, &l.Weight, &l.Location,
		&catchDate, &l.Released, &l.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	l.CatchDate = calendar.DateOf(catchDate)
	return &l, nil
}

func (r *pgxRepository) Create(ctx context.Context, l *Log) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.logs").
		Columns("user_id", "fish_name", "picture_url", "comment", "size", "weight", "location", "catch_date", "released").
		Values(l.UserID, l.FishName, l.PictureURL, l.Comment, l.Size, l.Weight, l.Location, l.CatchDate.Time(), l.Released).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create log query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("create log failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Log, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(logColumns...).
		From("public.logs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get log query failed: %w", err)
	}

	l, err := scanLog(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get log failed: %w", err)
	}
	return l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Log, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(logColumns, "count(*) OVER() AS total_count")...).
		From("public.logs")

	// Dynamic Filtering
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.FishName != "" {
		query = query.Where(squirrel.ILike{"fish_name": "%" + filter.FishName + "%"})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"location": "%" + filter.Location + "%"})
	}
	if filter.MinSize != nil {
		query = query.Where(squirrel.GtOrEq{"size": *filter.MinSize})
	}
	if filter.MaxSize != nil {
		query = query.Where(squirrel.LtOrEq{"size": *filter.MaxSize})
	}
	if filter.MinWeight != nil {
		query = query.Where(squirrel.GtOrEq{"weight": *filter.MinWeight})
	}
	if filter.MaxWeight != nil {
		query = query.Where(squirrel.LtOrEq{"weight": *filter.MaxWeight})
	}
	if filter.Released != nil {
		query = query.Where(squirrel.Eq{"released": *filter.Released})
	}
	if filter.MinCatchDate != nil {
		query = query.Where(squirrel.GtOrEq{"catch_date": filter.MinCatchDate.Time()})
	}
	if filter.MaxCatchDate != nil {
		query = query.Where(squirrel.LtOrEq{"catch_date": filter.MaxCatchDate.Time()})
	}

	orderBy := "catch_date"
	if filter.SortBy != "" {
		// Handler validation restricts SortBy to known columns.
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list logs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list logs failed: %w", err)
	}
	defer rows.Close()

	var logs []*Log
	var total int
	for rows.Next() {
		l, err := scanLog(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan log failed: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list logs failed: %w", err)
	}

	return logs, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Log) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.logs").
		Set("fish_name", l.FishName).
		Set("comment", l.Comment).
		Set("size", l.Size).
		Set("weight", l.Weight).
		Set("location", l.Location).
		Set("catch_date", l.CatchDate.Time()).
		Set("released", l.Released).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update log query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update log failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.logs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete log query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete log failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetPictureURL(ctx context.Context, id string, url string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.logs").
		Set("picture_url", url).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set picture query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set log picture failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
