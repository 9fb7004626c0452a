package boat

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for boats.
type Repository interface {
	Create(ctx context.Context, b *Boat) error
	GetByID(ctx context.Context, id string) (*Boat, error)
	List(ctx context.Context, filter Filter) ([]*Boat, int, error)
	Update(ctx context.Context, b *Boat) error
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	SetPhotoURL(ctx context.Context, id string, url string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var boatColumns = []string{
	"id", "owner_id", "name", "description", "brand", "fabrication_year", "photo_url",
	"nb_passenger", "nb_seat", "port", "latitude", "longitude", "motor_power", "motor",
	"license", "boat_type", "equipment", "caution", "created_at",
}

func scanBoat(row pgx.Row, extra ...any) (*Boat, error) {
	var b Boat
	var equipment string
	dest := []any{
		&b.ID, &b.OwnerID, &b.Name, &b.Description, &b.Brand, &b.FabricationYear, &b.PhotoURL,
		&b.NbPassenger, &b.NbSeat, &b.Port, &b.Latitude, &b.Longitude, &b.MotorPower, &b.Motor,
		&b.License, &b.BoatType, &equipment, &b.Caution, &b.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Equipment = DecodeEquipment(equipment)
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Boat) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.boats").
		Columns(
			"owner_id", "name", "description", "brand", "fabrication_year", "photo_url",
			"nb_passenger", "nb_seat", "port", "latitude", "longitude", "motor_power", "motor",
			"license", "boat_type", "equipment", "caution",
		).
		Values(
			b.OwnerID, b.Name, b.Description, b.Brand, b.FabricationYear, b.PhotoURL,
			b.NbPassenger, b.NbSeat, b.Port, b.Latitude, b.Longitude, b.MotorPower, b.Motor,
			b.License, b.BoatType, EncodeEquipment(b.Equipment), b.Caution,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create boat query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create boat failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Boat, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(boatColumns...).
		From("public.boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get boat query failed: %w", err)
	}

	b, err := scanBoat(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get boat failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Boat, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(boatColumns, "count(*) OVER() AS total_count")...).
		From("public.boats")

	// Dynamic Filtering
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.Brand != "" {
		query = query.Where(squirrel.ILike{"brand": "%" + filter.Brand + "%"})
	}
	if filter.Port != "" {
		query = query.Where(squirrel.ILike{"port": "%" + filter.Port + "%"})
	}
	if filter.BoatType != "" {
		query = query.Where(squirrel.Eq{"boat_type": filter.BoatType})
	}
	if filter.Motor != "" {
		query = query.Where(squirrel.Eq{"motor": filter.Motor})
	}
	if filter.License != "" {
		query = query.Where(squirrel.Eq{"license": filter.License})
	}
	if filter.MinPassenger != nil {
		query = query.Where(squirrel.GtOrEq{"nb_passenger": *filter.MinPassenger})
	}
	if filter.MaxPassenger != nil {
		query = query.Where(squirrel.LtOrEq{"nb_passenger": *filter.MaxPassenger})
	}
	if filter.MinFabricationYear != nil {
		query = query.Where(squirrel.GtOrEq{"fabrication_year": *filter.MinFabricationYear})
	}
	if filter.MaxFabricationYear != nil {
		query = query.Where(squirrel.LtOrEq{"fabrication_year": *filter.MaxFabricationYear})
	}
	if filter.MinCaution != nil {
		query = query.Where(squirrel.GtOrEq{"caution": *filter.MinCaution})
	}
	if filter.MaxCaution != nil {
		query = query.Where(squirrel.LtOrEq{"caution": *filter.MaxCaution})
	}

	orderBy := "created_at"
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
		return nil, 0, fmt.Errorf("build list boats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list boats failed: %w", err)
	}
	defer rows.Close()

	var boats []*Boat
	var total int
	for rows.Next() {
		b, err := scanBoat(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan boat failed: %w", err)
		}
		boats = append(boats, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list boats failed: %w", err)
	}

	return boats, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Boat) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.boats").
		Set("name", b.Name).
		Set("description", b.Description).
		Set("brand", b.Brand).
		Set("fabrication_year", b.FabricationYear).
		Set("photo_url", b.PhotoURL).
		Set("nb_passenger", b.NbPassenger).
		Set("nb_seat", b.NbSeat).
		Set("port", b.Port).
		Set("latitude", b.Latitude).
		Set("longitude", b.Longitude).
		Set("motor_power", b.MotorPower).
		Set("motor", b.Motor).
		Set("license", b.License).
		Set("boat_type", b.BoatType).
		Set("equipment", EncodeEquipment(b.Equipment)).
		Set("caution", b.Caution).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update boat query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update boat failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete boat query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete boat failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.boats").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count boats query failed: %w", err)
	}

	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count boats failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) SetPhotoURL(ctx context.Context, id string, url string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.boats").
		Set("photo_url", url).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set boat photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set boat photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
