package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// StaffRepository handles persistence for staff members. It is the staff
// directory consumed by the scheduling core.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	Update(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error)
	ListByStation(ctx context.Context, stationID string) ([]domain.StaffMember, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Role      *domain.StaffRole
	StationID *string
	Active    *bool
	Available *bool
	Limit     int
	Offset    int
}

const staffColumns = `id, name, email, password_hash, role, station_id, active_flag, available_flag,
        certifications, skills, available_shifts, max_weekly_hours, max_daily_hours, created_at, updated_at`

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (name, email, password_hash, role, station_id, active_flag, available_flag,
            certifications, skills, available_shifts, max_weekly_hours, max_daily_hours)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.StationID,
		staff.Active,
		staff.Available,
		staff.Certifications,
		staff.Skills,
		shiftLabels(staff.AvailableShifts),
		staff.MaxWeeklyHours,
		staff.MaxDailyHours,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        UPDATE staff_members
        SET name=$1, email=$2, password_hash=$3, role=$4, station_id=$5, active_flag=$6, available_flag=$7,
            certifications=$8, skills=$9, available_shifts=$10, max_weekly_hours=$11, max_daily_hours=$12,
            updated_at=NOW()
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.StationID,
		staff.Active,
		staff.Available,
		staff.Certifications,
		staff.Skills,
		shiftLabels(staff.AvailableShifts),
		staff.MaxWeeklyHours,
		staff.MaxDailyHours,
		staff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members`
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.StationID != nil {
		args = append(args, *filter.StationID)
		clauses = append(clauses, fmt.Sprintf("station_id=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active_flag=$%d", len(args)))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		clauses = append(clauses, fmt.Sprintf("available_flag=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY id"
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
	return r.scanMany(rows)
}

func (r *staffRepository) ListByStation(ctx context.Context, stationID string) ([]domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE station_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *staffRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	const query = `UPDATE staff_members SET available_flag=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, available, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) scanOne(row pgx.Row) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	var shifts []string
	if err := row.Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.StationID,
		&staff.Active,
		&staff.Available,
		&staff.Certifications,
		&staff.Skills,
		&shifts,
		&staff.MaxWeeklyHours,
		&staff.MaxDailyHours,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	staff.AvailableShifts = parseShifts(shifts)
	return &staff, nil
}

func (r *staffRepository) scanMany(rows pgx.Rows) ([]domain.StaffMember, error) {
	var result []domain.StaffMember
	for rows.Next() {
		staff, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func shiftLabels(shifts []domain.ShiftWindow) []string {
	labels := make([]string, 0, len(shifts))
	for _, s := range shifts {
		labels = append(labels, string(s))
	}
	return labels
}

func parseShifts(labels []string) []domain.ShiftWindow {
	shifts := make([]domain.ShiftWindow, 0, len(labels))
	for _, l := range labels {
		if w, ok := domain.ParseShiftWindow(l); ok {
			shifts = append(shifts, w)
		}
	}
	return shifts
}
