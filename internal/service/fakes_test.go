package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/repository"
)

type fakeStaffRepo struct {
	members map[string]domain.StaffMember
}

func newFakeStaffRepo(members ...domain.StaffMember) *fakeStaffRepo {
	repo := &fakeStaffRepo{members: make(map[string]domain.StaffMember)}
	for _, m := range members {
		repo.members[m.ID] = m
	}
	return repo
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	f.members[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	if _, ok := f.members[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.members[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := m
	return &cp, nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for _, m := range f.members {
		if m.Email == email {
			cp := m
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) List(_ context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, m := range f.members {
		if filter.Role != nil && m.Role != *filter.Role {
			continue
		}
		if filter.StationID != nil && (m.StationID == nil || *m.StationID != *filter.StationID) {
			continue
		}
		if filter.Active != nil && m.Active != *filter.Active {
			continue
		}
		if filter.Available != nil && m.Available != *filter.Available {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStaffRepo) ListByStation(_ context.Context, stationID string) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, m := range f.members {
		if m.StationID != nil && *m.StationID == stationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) SetAvailability(_ context.Context, id string, available bool) error {
	m, ok := f.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.Available = available
	f.members[id] = m
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[string]domain.Assignment
	findErr     error
	// forceOverlapOnWrite simulates a concurrent insert winning the race
	// between validation and the exclusive write.
	forceOverlapOnWrite bool
}

func newFakeAssignmentRepo(assignments ...domain.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{assignments: make(map[string]domain.Assignment)}
	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		repo.assignments[a.ID] = a
	}
	return repo
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id string) (*domain.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := a
	return &cp, nil
}

func (f *fakeAssignmentRepo) FindOverlapping(_ context.Context, staffID string, start, end time.Time, statuses []domain.AssignmentStatus) ([]domain.Assignment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	allowed := make(map[domain.AssignmentStatus]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}
	var out []domain.Assignment
	for _, a := range f.assignments {
		if a.StaffID != staffID {
			continue
		}
		if _, ok := allowed[a.Status]; !ok {
			continue
		}
		if domain.Overlaps(a.StartTime, a.EndTime, start, end) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeAssignmentRepo) SumCompletedHours(_ context.Context, staffID string, weekStart, weekEnd time.Time) (float64, error) {
	if f.findErr != nil {
		return 0, f.findErr
	}
	var total float64
	for _, a := range f.assignments {
		if a.StaffID != staffID || a.Status != domain.AssignmentCompleted {
			continue
		}
		if a.StartTime.Before(weekStart) || !a.StartTime.Before(weekEnd) {
			continue
		}
		total += domain.DurationHours(a.StartTime, a.EndTime)
	}
	return total, nil
}

func (f *fakeAssignmentRepo) ListByStaff(_ context.Context, staffID string, _, _ int) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, a := range f.assignments {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListByOperation(_ context.Context, operationID string) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, a := range f.assignments {
		if a.OperationID == operationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) hasActiveOverlap(staffID string, start, end time.Time) bool {
	active := make(map[domain.AssignmentStatus]struct{}, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		active[s] = struct{}{}
	}
	for _, a := range f.assignments {
		if a.StaffID != staffID {
			continue
		}
		if _, ok := active[a.Status]; !ok {
			continue
		}
		if domain.Overlaps(a.StartTime, a.EndTime, start, end) {
			return true
		}
	}
	return false
}

func (f *fakeAssignmentRepo) CreateExclusive(_ context.Context, assignment *domain.Assignment) error {
	if f.forceOverlapOnWrite || f.hasActiveOverlap(assignment.StaffID, assignment.StartTime, assignment.EndTime) {
		return repository.ErrOverlappingAssignment
	}
	assignment.ID = uuid.NewString()
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	f.assignments[assignment.ID] = *assignment
	return nil
}

func (f *fakeAssignmentRepo) Replace(_ context.Context, originalID string, cancelNote string, replacement *domain.Assignment) error {
	original, ok := f.assignments[originalID]
	if !ok || original.Status == domain.AssignmentCancelled {
		return pgx.ErrNoRows
	}
	if f.forceOverlapOnWrite || f.hasActiveOverlap(replacement.StaffID, replacement.StartTime, replacement.EndTime) {
		return repository.ErrOverlappingAssignment
	}
	original.Status = domain.AssignmentCancelled
	if original.Notes != "" {
		original.Notes += "\n"
	}
	original.Notes += cancelNote
	f.assignments[originalID] = original

	replacement.ID = uuid.NewString()
	replacement.CreatedAt = time.Now()
	replacement.UpdatedAt = replacement.CreatedAt
	f.assignments[replacement.ID] = *replacement
	return nil
}

func (f *fakeAssignmentRepo) UpdateStatus(_ context.Context, id string, status domain.AssignmentStatus, note string) (*domain.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	a.Status = status
	if note != "" {
		a.Notes = note
	}
	a.UpdatedAt = time.Now()
	f.assignments[id] = a
	cp := a
	return &cp, nil
}

type fakeOperationRepo struct {
	operations map[string]domain.Operation
}

func newFakeOperationRepo(operations ...domain.Operation) *fakeOperationRepo {
	repo := &fakeOperationRepo{operations: make(map[string]domain.Operation)}
	for _, op := range operations {
		if op.ID == "" {
			op.ID = uuid.NewString()
		}
		repo.operations[op.ID] = op
	}
	return repo
}

func (f *fakeOperationRepo) Create(_ context.Context, op *domain.Operation) error {
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	f.operations[op.ID] = *op
	return nil
}

func (f *fakeOperationRepo) Update(_ context.Context, op *domain.Operation) error {
	if _, ok := f.operations[op.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.operations[op.ID] = *op
	return nil
}

func (f *fakeOperationRepo) GetByID(_ context.Context, id string) (*domain.Operation, error) {
	op, ok := f.operations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := op
	return &cp, nil
}

func (f *fakeOperationRepo) List(_ context.Context, filter repository.OperationFilter) ([]domain.Operation, error) {
	var out []domain.Operation
	for _, op := range f.operations {
		if filter.StationID != nil && op.StationID != *filter.StationID {
			continue
		}
		if filter.FlightType != nil && op.FlightType != *filter.FlightType {
			continue
		}
		out = append(out, op)
	}
	return out, nil
}

type fakeDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (f *fakeDispatcher) events() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event{}, f.published...)
}

type schedulingFixture struct {
	staff       *fakeStaffRepo
	assignments *fakeAssignmentRepo
	operations  *fakeOperationRepo
	dispatcher  *fakeDispatcher
	schedule    *ScheduleService
	staffing    *StaffingService
}

func newSchedulingFixture() *schedulingFixture {
	fx := &schedulingFixture{
		staff:       newFakeStaffRepo(),
		assignments: newFakeAssignmentRepo(),
		operations:  newFakeOperationRepo(),
		dispatcher:  &fakeDispatcher{},
	}
	logger := zap.NewNop()
	fx.schedule = NewScheduleService(ScheduleDependencies{
		StaffRepo:      fx.staff,
		AssignmentRepo: fx.assignments,
		OperationRepo:  fx.operations,
	}, logger)
	fx.staffing = NewStaffingService(config.SchedulingConfig{}, StaffingDependencies{
		StaffRepo:      fx.staff,
		AssignmentRepo: fx.assignments,
		OperationRepo:  fx.operations,
		Schedule:       fx.schedule,
		Dispatcher:     fx.dispatcher,
	}, logger)
	return fx
}

func hoursFloat(h float64) *float64 {
	return &h
}
