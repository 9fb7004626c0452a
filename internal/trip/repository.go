package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fisherfans/fisherfans-backend/internal/db"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

// Repository defines data access methods for trips.
type Repository interface {
	Create(ctx context.Context, t *Trip) error
	GetByID(ctx context.Context, id string) (*Trip, error)
	List(ctx context.Context, filter Filter) ([]*Trip, int, error)
	// Lock runs fn in one transaction holding the row lock of trip id.
	// It returns ErrNotFound when the trip does not exist.
	Lock(ctx context.Context, id string, fn func(ctx context.Context, l Locked) error) error
	Delete(ctx context.Context, id string) error
	// MaxTripPassengers returns the largest nb_passengers among trips on a boat, 0 when none.
	MaxTripPassengers(ctx context.Context, boatID string) (int, error)
}

// Locked is what a Lock callback may do while the trip row is held.
type Locked interface {
	Trip() *Trip
	// MaxReservedSeats returns the seats reserved on the busiest date of the trip.
	MaxReservedSeats(ctx context.Context) (int, error)
	Update(ctx context.Context, t *Trip) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var tripColumns = []string{
	"id", "organizer_id", "boat_id", "title", "description", "practical_info", "trip_type",
	"pricing_type", "dates", "schedules", "nb_passengers", "price", "created_at",
}

func scanTrip(row pgx.Row, extra ...any) (*Trip, error) {
	var t Trip
	var dates, schedules []byte
	dest := []any{
		&t.ID, &t.OrganizerID, &t.BoatID, &t.Title, &t.Description, &t.PracticalInfo, &t.TripType,
		&t.PricingType, &dates, &schedules, &t.NbPassengers, &t.Price, &t.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var err error
	if t.Dates, err = calendar.DecodeDateRanges(dates); err != nil {
		return nil, err
	}
	if t.Schedules, err = calendar.DecodeSchedules(schedules); err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeCalendar(t *Trip) (dates, schedules []byte, err error) {
	if dates, err = calendar.EncodeDateRanges(t.Dates); err != nil {
		return nil, nil, err
	}
	if schedules, err = calendar.EncodeSchedules(t.Schedules); err != nil {
		return nil, nil, err
	}
	return dates, schedules, nil
}

func (r *pgxRepository) Create(ctx context.Context, t *Trip) error {
	dates, schedules, err := encodeCalendar(t)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.trips").
		Columns(
			"organizer_id", "boat_id", "title", "description", "practical_info", "trip_type",
			"pricing_type", "dates", "schedules", "nb_passengers", "price",
		).
		Values(
			t.OrganizerID, t.BoatID, t.Title, t.Description, t.PracticalInfo, t.TripType,
			t.PricingType, dates, schedules, t.NbPassengers, t.Price,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create trip query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("create trip failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Trip, error) {
	return getByID(ctx, r.pool, id, false)
}

// GetForUpdate loads a trip and locks its row until the transaction behind q ends.
func GetForUpdate(ctx context.Context, q db.Querier, id string) (*Trip, error) {
	return getByID(ctx, q, id, true)
}

func getByID(ctx context.Context, q db.Querier, id string, lock bool) (*Trip, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(tripColumns...).
		From("public.trips").
		Where(squirrel.Eq{"id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get trip query failed: %w", err)
	}

	t, err := scanTrip(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get trip failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Trip, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(tripColumns, "count(*) OVER() AS total_count")...).
		From("public.trips")

	// Dynamic Filtering
	if filter.OrganizerID != "" {
		query = query.Where(squirrel.Eq{"organizer_id": filter.OrganizerID})
	}
	if filter.BoatID != "" {
		query = query.Where(squirrel.Eq{"boat_id": filter.BoatID})
	}
	if filter.Title != "" {
		query = query.Where(squirrel.ILike{"title": "%" + filter.Title + "%"})
	}
	if filter.TripType != "" {
		query = query.Where(squirrel.Eq{"trip_type": filter.TripType})
	}
	if filter.PricingType != "" {
		query = query.Where(squirrel.Eq{"pricing_type": filter.PricingType})
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"price": *filter.MaxPrice})
	}
	if filter.MinPassengers != nil {
		query = query.Where(squirrel.GtOrEq{"nb_passengers": *filter.MinPassengers})
	}
	if cond, args := dateOverlap(filter.StartDate, filter.EndDate); cond != "" {
		query = query.Where(cond, args...)
	}
	if cond, args := scheduleWindow(filter.StartTime, filter.EndTime); cond != "" {
		query = query.Where(cond, args...)
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
		return nil, 0, fmt.Errorf("build list trips query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list trips failed: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	var total int
	for rows.Next() {
		t, err := scanTrip(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan trip failed: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list trips failed: %w", err)
	}

	return trips, total, nil
}

// dateOverlap matches trips having one date range that intersects [start, end].
func dateOverlap(start, end *calendar.Date) (string, []any) {
	var conds []string
	var args []any
	if start != nil {
		conds = append(conds, "(d->>'end')::date >= ?::date")
		args = append(args, start.String())
	}
	if end != nil {
		conds = append(conds, "(d->>'start')::date <= ?::date")
		args = append(args, end.String())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "EXISTS (SELECT 1 FROM jsonb_array_elements(dates) AS d WHERE " + strings.Join(conds, " AND ") + ")", args
}

// scheduleWindow matches trips having one schedule inside [start, end].
func scheduleWindow(start, end *calendar.TimeOfDay) (string, []any) {
	var conds []string
	var args []any
	if start != nil {
		conds = append(conds, "(s->>'departure')::time >= ?::time")
		args = append(args, start.String())
	}
	if end != nil {
		conds = append(conds, "(s->>'arrival')::time <= ?::time")
		args = append(args, end.String())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "EXISTS (SELECT 1 FROM jsonb_array_elements(schedules) AS s WHERE " + strings.Join(conds, " AND ") + ")", args
}

func update(ctx context.Context, q db.Querier, t *Trip) error {
	dates, schedules, err := encodeCalendar(t)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.trips").
		Set("boat_id", t.BoatID).
		Set("title", t.Title).
		Set("description", t.Description).
		Set("practical_info", t.PracticalInfo).
		Set("trip_type", t.TripType).
		Set("pricing_type", t.PricingType).
		Set("dates", dates).
		Set("schedules", schedules).
		Set("nb_passengers", t.NbPassengers).
		Set("price", t.Price).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update trip query failed: %w", err)
	}

	ct, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update trip failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Lock(ctx context.Context, id string, fn func(ctx context.Context, l Locked) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		t, err := GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		return fn(ctx, &pgxLocked{q: tx, trip: t})
	})
}

// pgxLocked reads and writes through the transaction that locked the trip.
type pgxLocked struct {
	q    db.Querier
	trip *Trip
}

func (l *pgxLocked) Trip() *Trip {
	return l.trip
}

func (l *pgxLocked) MaxReservedSeats(ctx context.Context) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// The subquery keeps "?" placeholders; the outer builder numbers them.
	perDate := squirrel.Select("SUM(nb_seats) AS seats").
		From("public.reservations").
		Where(squirrel.Eq{"trip_id": l.trip.ID}).
		GroupBy("reservation_date")
	query, args, err := psql.Select("COALESCE(MAX(seats), 0)").
		FromSelect(perDate, "per_date").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build max reserved seats query failed: %w", err)
	}

	var n int
	if err := l.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("max reserved seats failed: %w", err)
	}
	return n, nil
}

func (l *pgxLocked) Update(ctx context.Context, t *Trip) error {
	return update(ctx, l.q, t)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.trips").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete trip query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete trip failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) MaxTripPassengers(ctx context.Context, boatID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("COALESCE(MAX(nb_passengers), 0)").
		From("public.trips").
		Where(squirrel.Eq{"boat_id": boatID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build max passengers query failed: %w", err)
	}

	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("max trip passengers failed: %w", err)
	}
	return n, nil
}
