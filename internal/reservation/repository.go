package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fisherfans/fisherfans-backend/internal/db"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
	"github.com/fisherfans/fisherfans-backend/internal/trip"
)

// Repository defines data access methods for reservations.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Delete(ctx context.Context, id string) error
	// Book runs fn in one transaction holding the row lock of trip tripID.
	// It returns trip.ErrNotFound when the trip does not exist.
	Book(ctx context.Context, tripID string, fn func(ctx context.Context, b Booking) error) error
}

// Booking is what a booking callback may do while the trip is locked.
type Booking interface {
	Trip() *trip.Trip
	// ReservedSeats sums nb_seats on date, leaving out reservation excludeID.
	ReservedSeats(ctx context.Context, date calendar.Date, excludeID string) (int, error)
	Create(ctx context.Context, r *Reservation) error
	Update(ctx context.Context, r *Reservation) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var reservationColumns = []string{
	"id", "trip_id", "user_id", "reservation_date", "nb_seats", "total_price", "created_at",
}

func scanReservation(row pgx.Row, extra ...any) (*Reservation, error) {
	var r Reservation
	var day time.Time
	dest := []any{&r.ID, &r.TripID, &r.UserID, &day, &r.NbSeats, &r.TotalPrice, &r.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	r.ReservationDate = calendar.DateOf(day)
	return &r, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(reservationColumns, "count(*) OVER() AS total_count")...).
		From("public.reservations")

	// Dynamic Filtering
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.TripID != "" {
		query = query.Where(squirrel.Eq{"trip_id": filter.TripID})
	}
	if filter.MinDate != nil {
		query = query.Where(squirrel.GtOrEq{"reservation_date": filter.MinDate.Time()})
	}
	if filter.MaxDate != nil {
		query = query.Where(squirrel.LtOrEq{"reservation_date": filter.MaxDate.Time()})
	}
	if filter.MinSeats != nil {
		query = query.Where(squirrel.GtOrEq{"nb_seats": *filter.MinSeats})
	}
	if filter.MaxSeats != nil {
		query = query.Where(squirrel.LtOrEq{"nb_seats": *filter.MaxSeats})
	}
	if filter.MinTotalPrice != nil {
		query = query.Where(squirrel.GtOrEq{"total_price": *filter.MinTotalPrice})
	}
	if filter.MaxTotalPrice != nil {
		query = query.Where(squirrel.LtOrEq{"total_price": *filter.MaxTotalPrice})
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
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int
	for rows.Next() {
		res, err := scanReservation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}

	return reservations, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Book(ctx context.Context, tripID string, fn func(ctx context.Context, b Booking) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		t, err := trip.GetForUpdate(ctx, tx, tripID)
		if err != nil {
			return err
		}
		return fn(ctx, &pgxBooking{q: tx, trip: t})
	})
}

// pgxBooking writes through the transaction that locked the trip.
type pgxBooking struct {
	q    db.Querier
	trip *trip.Trip
}

func (b *pgxBooking) Trip() *trip.Trip {
	return b.trip
}

func (b *pgxBooking) ReservedSeats(ctx context.Context, date calendar.Date, excludeID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select("COALESCE(SUM(nb_seats), 0)").
		From("public.reservations").
		Where(squirrel.Eq{"trip_id": b.trip.ID, "reservation_date": date.Time()})
	if excludeID != "" {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reserved seats query failed: %w", err)
	}

	var n int
	if err := b.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum reserved seats failed: %w", err)
	}
	return n, nil
}

func (b *pgxBooking) Create(ctx context.Context, r *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("trip_id", "user_id", "reservation_date", "nb_seats", "total_price").
		Values(r.TripID, r.UserID, r.ReservationDate.Time(), r.NbSeats, r.TotalPrice).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := b.q.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt); err != nil {
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (b *pgxBooking) Update(ctx context.Context, r *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("reservation_date", r.ReservationDate.Time()).
		Set("nb_seats", r.NbSeats).
		Set("total_price", r.TotalPrice).
		Where(squirrel.Eq{"id": r.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := b.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
