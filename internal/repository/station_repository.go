package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// StationRepository handles persistence for stations.
type StationRepository interface {
	Create(ctx context.Context, station *domain.Station) error
	Update(ctx context.Context, station *domain.Station) error
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Station, error)
}

type stationRepository struct {
	pool *pgxpool.Pool
}

// NewStationRepository instantiates the repository.
func NewStationRepository(pool *pgxpool.Pool) StationRepository {
	return &stationRepository{pool: pool}
}

func (r *stationRepository) Create(ctx context.Context, station *domain.Station) error {
	const query = `
        INSERT INTO stations (name, code, minimum_staff, maximum_staff, required_certifications, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		station.Name,
		station.Code,
		station.MinimumStaff,
		station.MaximumStaff,
		station.RequiredCertifications,
		station.Active,
	).Scan(&station.ID, &station.CreatedAt, &station.UpdatedAt)
}

func (r *stationRepository) Update(ctx context.Context, station *domain.Station) error {
	const query = `
        UPDATE stations
        SET name=$1, code=$2, minimum_staff=$3, maximum_staff=$4, required_certifications=$5, active_flag=$6,
            updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		station.Name,
		station.Code,
		station.MinimumStaff,
		station.MaximumStaff,
		station.RequiredCertifications,
		station.Active,
		station.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	const query = `
        SELECT id, name, code, minimum_staff, maximum_staff, required_certifications, active_flag, created_at, updated_at
        FROM stations WHERE id=$1`

	var station domain.Station
	if err := r.pool.QueryRow(ctx, query, id).Scan(
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
	return &station, nil
}

func (r *stationRepository) List(ctx context.Context, includeInactive bool) ([]domain.Station, error) {
	query := `
        SELECT id, name, code, minimum_staff, maximum_staff, required_certifications, active_flag, created_at, updated_at
        FROM stations`
	if !includeInactive {
		query += ` WHERE active_flag=TRUE`
	}
	query += ` ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Station
	for rows.Next() {
		var station domain.Station
		if err := rows.Scan(
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
		result = append(result, station)
	}
	return result, rows.Err()
}
