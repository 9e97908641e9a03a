package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// OperationRepository handles persistence for flight/ground operations.
// GetByID resolves the owning station so callers see its staffing
// requirements without a second query.
type OperationRepository interface {
	Create(ctx context.Context, op *domain.Operation) error
	Update(ctx context.Context, op *domain.Operation) error
	GetByID(ctx context.Context, id string) (*domain.Operation, error)
	List(ctx context.Context, filter OperationFilter) ([]domain.Operation, error)
}

// OperationFilter defines query params for operation listing.
type OperationFilter struct {
	StationID  *string
	FlightType *domain.FlightType
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type operationRepository struct {
	pool *pgxpool.Pool
}

// NewOperationRepository instantiates the repository.
func NewOperationRepository(pool *pgxpool.Pool) OperationRepository {
	return &operationRepository{pool: pool}
}

func (r *operationRepository) Create(ctx context.Context, op *domain.Operation) error {
	const query = `
        INSERT INTO operations (flight_number, flight_type, direction, scheduled_time, estimated_duration_hours,
            passenger_count, station_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		op.FlightNumber,
		op.FlightType,
		op.Direction,
		op.ScheduledTime,
		op.EstimatedDurationHours,
		op.PassengerCount,
		op.StationID,
	).Scan(&op.ID, &op.CreatedAt, &op.UpdatedAt)
}

func (r *operationRepository) Update(ctx context.Context, op *domain.Operation) error {
	const query = `
        UPDATE operations
        SET flight_number=$1, flight_type=$2, direction=$3, scheduled_time=$4, estimated_duration_hours=$5,
            passenger_count=$6, station_id=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		op.FlightNumber,
		op.FlightType,
		op.Direction,
		op.ScheduledTime,
		op.EstimatedDurationHours,
		op.PassengerCount,
		op.StationID,
		op.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *operationRepository) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	const query = `
        SELECT o.id, o.flight_number, o.flight_type, o.direction, o.scheduled_time, o.estimated_duration_hours,
               o.passenger_count, o.station_id, o.created_at, o.updated_at,
               s.id, s.name, s.code, s.minimum_staff, s.maximum_staff, s.required_certifications, s.active_flag,
               s.created_at, s.updated_at
        FROM operations o
        JOIN stations s ON s.id = o.station_id
        WHERE o.id=$1`

	var op domain.Operation
	var station domain.Station
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&op.ID,
		&op.FlightNumber,
		&op.FlightType,
		&op.Direction,
		&op.ScheduledTime,
		&op.EstimatedDurationHours,
		&op.PassengerCount,
		&op.StationID,
		&op.CreatedAt,
		&op.UpdatedAt,
		&station.ID,
		&station.Name,
		&station.Code,
		&station.MinimumStaff,
		&station.MaximumStaff,
		&station.RequiredCertifications,
		&station.Active,
		&station.CreatedAt,
		&station.UpdatedAt,
	); err != nil {
		return nil, err
	}
	op.Station = &station
	return &op, nil
}

func (r *operationRepository) List(ctx context.Context, filter OperationFilter) ([]domain.Operation, error) {
	query := `
        SELECT id, flight_number, flight_type, direction, scheduled_time, estimated_duration_hours,
               passenger_count, station_id, created_at, updated_at
        FROM operations`
	args := []any{}
	clauses := []string{}

	if filter.StationID != nil {
		args = append(args, *filter.StationID)
		clauses = append(clauses, fmt.Sprintf("station_id=$%d", len(args)))
	}
	if filter.FlightType != nil {
		args = append(args, *filter.FlightType)
		clauses = append(clauses, fmt.Sprintf("flight_type=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("scheduled_time>=$%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("scheduled_time<$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY scheduled_time"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Operation
	for rows.Next() {
		var op domain.Operation
		if err := rows.Scan(
			&op.ID,
			&op.FlightNumber,
			&op.FlightType,
			&op.Direction,
			&op.ScheduledTime,
			&op.EstimatedDurationHours,
			&op.PassengerCount,
			&op.StationID,
			&op.CreatedAt,
			&op.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, op)
	}
	return result, rows.Err()
}
