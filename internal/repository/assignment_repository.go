package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// ErrOverlappingAssignment is returned when an insert would violate the
// per-staff overlap exclusion re-checked inside the write transaction.
var ErrOverlappingAssignment = errors.New("staff already assigned in that window")

// AssignmentRepository is the assignment ledger. Writes that could race with
// a concurrent overlap check run in a transaction holding a per-staff
// advisory lock, so check-then-insert is atomic per staff member.
type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	FindOverlapping(ctx context.Context, staffID string, start, end time.Time, statuses []domain.AssignmentStatus) ([]domain.Assignment, error)
	SumCompletedHours(ctx context.Context, staffID string, weekStart, weekEnd time.Time) (float64, error)
	ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]domain.Assignment, error)
	ListByOperation(ctx context.Context, operationID string) ([]domain.Assignment, error)
	CreateExclusive(ctx context.Context, assignment *domain.Assignment) error
	Replace(ctx context.Context, originalID string, cancelNote string, replacement *domain.Assignment) error
	UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, note string) (*domain.Assignment, error)
}

const assignmentColumns = `id, staff_id, operation_id, start_time, end_time, status, is_replacement,
        replacement_for_staff_id, cost, overtime_hours, notes, created_at, updated_at`

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id=$1`
	return scanAssignment(r.pool.QueryRow(ctx, query, id))
}

func (r *assignmentRepository) FindOverlapping(ctx context.Context, staffID string, start, end time.Time, statuses []domain.AssignmentStatus) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE staff_id=$1 AND status=ANY($2) AND start_time < $4 AND end_time > $3
        ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, staffID, statusLabels(statuses), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// SumCompletedHours totals COMPLETED assignment durations within [weekStart,
// weekEnd). Only completed work counts toward the weekly cap.
func (r *assignmentRepository) SumCompletedHours(ctx context.Context, staffID string, weekStart, weekEnd time.Time) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 3600.0), 0)
        FROM assignments
        WHERE staff_id=$1 AND status=$2 AND start_time >= $3 AND start_time < $4`

	var hours float64
	if err := r.pool.QueryRow(ctx, query, staffID, domain.AssignmentCompleted, weekStart, weekEnd).Scan(&hours); err != nil {
		return 0, err
	}
	return hours, nil
}

func (r *assignmentRepository) ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]domain.Assignment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE staff_id=$1 ORDER BY start_time DESC` +
		fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *assignmentRepository) ListByOperation(ctx context.Context, operationID string) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE operation_id=$1 ORDER BY start_time`
	rows, err := r.pool.Query(ctx, query, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// CreateExclusive inserts the assignment after re-checking the overlap
// exclusion under a per-staff advisory lock held for the transaction.
func (r *assignmentRepository) CreateExclusive(ctx context.Context, assignment *domain.Assignment) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockStaff(ctx, tx, assignment.StaffID); err != nil {
			return err
		}
		if err := ensureNoOverlap(ctx, tx, assignment.StaffID, assignment.StartTime, assignment.EndTime); err != nil {
			return err
		}
		return insertAssignment(ctx, tx, assignment)
	})
}

// Replace cancels the original assignment and inserts its replacement in one
// transaction. Either both changes commit or neither does.
func (r *assignmentRepository) Replace(ctx context.Context, originalID string, cancelNote string, replacement *domain.Assignment) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockStaff(ctx, tx, replacement.StaffID); err != nil {
			return err
		}
		if err := ensureNoOverlap(ctx, tx, replacement.StaffID, replacement.StartTime, replacement.EndTime); err != nil {
			return err
		}

		const cancel = `
            UPDATE assignments
            SET status=$1, notes=TRIM(notes || E'\n' || $2), updated_at=NOW()
            WHERE id=$3 AND status<>$1`
		cmd, err := tx.Exec(ctx, cancel, domain.AssignmentCancelled, cancelNote, originalID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		return insertAssignment(ctx, tx, replacement)
	})
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, note string) (*domain.Assignment, error) {
	const query = `
        UPDATE assignments
        SET status=$1, notes=CASE WHEN $2='' THEN notes ELSE TRIM(notes || E'\n' || $2) END, updated_at=NOW()
        WHERE id=$3
        RETURNING ` + assignmentColumns

	return scanAssignment(r.pool.QueryRow(ctx, query, status, note, id))
}

// lockStaff serializes writers for one staff member. hashtext keeps the lock
// key derived from the staff UUID.
func lockStaff(ctx context.Context, tx pgx.Tx, staffID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, staffID)
	return err
}

func ensureNoOverlap(ctx context.Context, tx pgx.Tx, staffID string, start, end time.Time) error {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM assignments
            WHERE staff_id=$1 AND status=ANY($2) AND start_time < $4 AND end_time > $3
        )`
	var exists bool
	if err := tx.QueryRow(ctx, query, staffID, statusLabels(domain.ActiveStatuses), start, end).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrOverlappingAssignment
	}
	return nil
}

func insertAssignment(ctx context.Context, tx pgx.Tx, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (staff_id, operation_id, start_time, end_time, status, is_replacement,
            replacement_for_staff_id, cost, overtime_hours, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	return tx.QueryRow(ctx, query,
		assignment.StaffID,
		assignment.OperationID,
		assignment.StartTime,
		assignment.EndTime,
		assignment.Status,
		assignment.IsReplacement,
		assignment.ReplacementForStaffID,
		assignment.Cost,
		assignment.OvertimeHours,
		assignment.Notes,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := row.Scan(
		&a.ID,
		&a.StaffID,
		&a.OperationID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.IsReplacement,
		&a.ReplacementForStaffID,
		&a.Cost,
		&a.OvertimeHours,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func statusLabels(statuses []domain.AssignmentStatus) []string {
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, string(s))
	}
	return labels
}
