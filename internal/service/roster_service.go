package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
	apperrors "github.com/spec-kit/groundops-service/pkg/util"
)

// RosterService manages stations and staff records.
type RosterService struct {
	stations   repository.StationRepository
	staff      repository.StaffRepository
	bcryptCost int
}

// RosterDependencies encapsulates repositories for roster management.
type RosterDependencies struct {
	StationRepo repository.StationRepository
	StaffRepo   repository.StaffRepository
}

// NewRosterService constructs the service.
func NewRosterService(cfg config.Config, deps RosterDependencies) *RosterService {
	return &RosterService{
		stations:   deps.StationRepo,
		staff:      deps.StaffRepo,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// StaffCreateInput carries fields for creating a staff member.
type StaffCreateInput struct {
	Name            string
	Email           string
	Password        string
	Role            domain.StaffRole
	StationID       *string
	Certifications  []string
	Skills          []string
	AvailableShifts []domain.ShiftWindow
	MaxWeeklyHours  float64
	MaxDailyHours   float64
}

// StaffUpdateInput enumerates the optional fields of a staff update.
// Nil pointers leave the current value untouched.
type StaffUpdateInput struct {
	Name            *string
	Email           *string
	Role            *domain.StaffRole
	StationID       *string
	ClearStation    bool
	Active          *bool
	Available       *bool
	Certifications  []string
	Skills          []string
	AvailableShifts []domain.ShiftWindow
	MaxWeeklyHours  *float64
	MaxDailyHours   *float64
}

func requireStationPriv(actor *domain.StaffMember) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if !auth.HasPermission(actor.Role, auth.PermManageStations) {
		return apperrors.NewForbidden("station management requires admin role")
	}
	return nil
}

func requireStaffPriv(actor *domain.StaffMember) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if !auth.HasPermission(actor.Role, auth.PermManageStaff) {
		return apperrors.NewForbidden("staff management requires manager role")
	}
	return nil
}

// CreateStation creates a new station.
func (s *RosterService) CreateStation(ctx context.Context, actor *domain.StaffMember, station *domain.Station) (*domain.Station, error) {
	if err := requireStationPriv(actor); err != nil {
		return nil, err
	}
	if station.MinimumStaff < 0 || (station.MaximumStaff > 0 && station.MaximumStaff < station.MinimumStaff) {
		return nil, apperrors.NewValidationError("maximum staff cannot be below minimum staff", nil)
	}
	station.Active = true
	if err := s.stations.Create(ctx, station); err != nil {
		return nil, apperrors.MapError(err)
	}
	return station, nil
}

// UpdateStation updates station fields.
func (s *RosterService) UpdateStation(ctx context.Context, actor *domain.StaffMember, station *domain.Station) (*domain.Station, error) {
	if err := requireStationPriv(actor); err != nil {
		return nil, err
	}
	if err := s.stations.Update(ctx, station); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("station", map[string]any{"station_id": station.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return station, nil
}

// GetStation fetches a station by id.
func (s *RosterService) GetStation(ctx context.Context, id string) (*domain.Station, error) {
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("station", map[string]any{"station_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return station, nil
}

// ListStations returns stations.
func (s *RosterService) ListStations(ctx context.Context, includeInactive bool) ([]domain.Station, error) {
	stations, err := s.stations.List(ctx, includeInactive)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stations, nil
}

// CreateStaffMember creates a staff record with hashed credentials.
func (s *RosterService) CreateStaffMember(ctx context.Context, actor *domain.StaffMember, input StaffCreateInput) (*domain.StaffMember, error) {
	if err := requireStaffPriv(actor); err != nil {
		return nil, err
	}
	if _, err := s.staff.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	role := input.Role
	if role == "" {
		role = domain.StaffRoleWorker
	}
	weekly := input.MaxWeeklyHours
	if weekly <= 0 {
		weekly = domain.DefaultMaxWeeklyHours
	}
	daily := input.MaxDailyHours
	if daily <= 0 {
		daily = domain.DefaultMaxDailyHours
	}

	staff := &domain.StaffMember{
		Name:            input.Name,
		Email:           input.Email,
		PasswordHash:    hash,
		Role:            role,
		StationID:       input.StationID,
		Active:          true,
		Available:       true,
		Certifications:  input.Certifications,
		Skills:          input.Skills,
		AvailableShifts: input.AvailableShifts,
		MaxWeeklyHours:  weekly,
		MaxDailyHours:   daily,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// UpdateStaffMember applies the provided optional fields.
// Deactivation is a flag: staff referenced by assignments are never deleted.
func (s *RosterService) UpdateStaffMember(ctx context.Context, actor *domain.StaffMember, id string, input StaffUpdateInput) (*domain.StaffMember, error) {
	if err := requireStaffPriv(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Email != nil {
		staff.Email = *input.Email
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.ClearStation {
		staff.StationID = nil
	} else if input.StationID != nil {
		staff.StationID = input.StationID
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}
	if input.Available != nil {
		staff.Available = *input.Available
	}
	if input.Certifications != nil {
		staff.Certifications = input.Certifications
	}
	if input.Skills != nil {
		staff.Skills = input.Skills
	}
	if input.AvailableShifts != nil {
		staff.AvailableShifts = input.AvailableShifts
	}
	if input.MaxWeeklyHours != nil && *input.MaxWeeklyHours > 0 {
		staff.MaxWeeklyHours = *input.MaxWeeklyHours
	}
	if input.MaxDailyHours != nil && *input.MaxDailyHours > 0 {
		staff.MaxDailyHours = *input.MaxDailyHours
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// GetStaffMember fetches a staff member by id.
func (s *RosterService) GetStaffMember(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// ListStaffMembers returns staff matching the filter.
func (s *RosterService) ListStaffMembers(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	list, err := s.staff.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// SetAvailability toggles a staff member's availability flag. Staff may
// toggle their own; managers may toggle anyone's.
func (s *RosterService) SetAvailability(ctx context.Context, actor *domain.StaffMember, id string, available bool) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if actor.ID != id && !auth.HasPermission(actor.Role, auth.PermManageStaff) {
		return apperrors.NewForbidden("cannot change another staff member's availability")
	}
	if err := s.staff.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff", map[string]any{"staff_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
