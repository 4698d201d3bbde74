package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/cache"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/validator"
)

// In-memory repository fakes shared by the service tests. WithTransaction
// runs the callback against the same stores, which is enough to exercise
// the services' transactional call order.

type fakeRepo struct {
	users        *fakeUserRepo
	availability *fakeAvailabilityRepo
	students     *fakeStudentRepo
	visits       *fakeVisitLogRepo
	todos        *fakeTodoRepo
	dashboard    *fakeDashboardRepo
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        &fakeUserRepo{users: map[uint]*models.User{}, hodInfo: map[uint]*models.HODInfo{}},
		availability: &fakeAvailabilityRepo{records: map[uint]*models.HODAvailability{}},
		students:     &fakeStudentRepo{students: map[uint]*models.StudentCore{}},
		visits:       &fakeVisitLogRepo{visits: map[uint]*models.VisitLog{}},
		todos:        &fakeTodoRepo{tasks: map[uint]*models.ToDoTask{}},
		dashboard:    &fakeDashboardRepo{},
	}
}

func (r *fakeRepo) User() repositories.UserRepository                 { return r.users }
func (r *fakeRepo) Availability() repositories.AvailabilityRepository { return r.availability }
func (r *fakeRepo) Student() repositories.StudentRepository           { return r.students }
func (r *fakeRepo) VisitLog() repositories.VisitLogRepository         { return r.visits }
func (r *fakeRepo) Todo() repositories.TodoRepository                 { return r.todos }
func (r *fakeRepo) Dashboard() repositories.DashboardRepository       { return r.dashboard }

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) Ping(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                   { return nil }

// Shared test fixtures.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testValidator() *validator.Validator {
	return validator.New()
}

func testCache() *cache.CacheManager {
	// nil client; the cache layer degrades to pass-through.
	return cache.NewCacheManager(nil)
}

// ===== USER =====

type fakeUserRepo struct {
	users   map[uint]*models.User
	hodInfo map[uint]*models.HODInfo
	nextID  uint

	createErr error
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CreateHODInfo(ctx context.Context, info *models.HODInfo) error {
	r.hodInfo[info.UserID] = info
	return nil
}

func (r *fakeUserRepo) GetHODInfo(ctx context.Context, userID uint) (*models.HODInfo, error) {
	info, ok := r.hodInfo[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return info, nil
}

func (r *fakeUserRepo) UpdateHODInfo(ctx context.Context, info *models.HODInfo) error {
	r.hodInfo[info.UserID] = info
	return nil
}

// ===== AVAILABILITY =====

type fakeAvailabilityRepo struct {
	records map[uint]*models.HODAvailability
	nextID  uint
}

func (r *fakeAvailabilityRepo) Create(ctx context.Context, availability *models.HODAvailability) error {
	r.nextID++
	availability.ID = r.nextID
	r.records[availability.UserID] = availability
	return nil
}

func (r *fakeAvailabilityRepo) GetByUserID(ctx context.Context, userID uint) (*models.HODAvailability, error) {
	record, ok := r.records[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeAvailabilityRepo) Update(ctx context.Context, availability *models.HODAvailability) error {
	if _, ok := r.records[availability.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.records[availability.UserID] = availability
	return nil
}

// ===== STUDENT =====

type fakeStudentRepo struct {
	students map[uint]*models.StudentCore
	nextID   uint

	createErr error
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.StudentCore) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	student.ID = r.nextID
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) CreatePersonalInfo(ctx context.Context, info *models.PersonalInfo) error {
	student, ok := r.students[info.StudentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.PersonalInfo = info
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.StudentCore, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByIDWithRecords(ctx context.Context, id uint) (*models.StudentCore, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeStudentRepo) GetByRollNumber(ctx context.Context, rollNumber string) (*models.StudentCore, error) {
	for _, student := range r.students {
		if student.RollNumber == rollNumber {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.StudentCore, int64, error) {
	var out []*models.StudentCore
	for _, student := range r.students {
		if filters.ProctorID != nil {
			if student.ProctorID == nil || *student.ProctorID != *filters.ProctorID {
				continue
			}
		}
		if filters.Department != nil && student.Department != *filters.Department {
			continue
		}
		out = append(out, student)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudentRepo) ListWithRecords(ctx context.Context, filters repositories.StudentFilters) ([]*models.StudentCore, int64, error) {
	return r.List(ctx, filters)
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.StudentCore) error {
	if _, ok := r.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	_, err := r.GetByRollNumber(ctx, rollNumber)
	return err == nil, nil
}

// ===== VISIT LOG =====

type fakeVisitLogRepo struct {
	visits map[uint]*models.VisitLog
	nextID uint
}

func (r *fakeVisitLogRepo) Create(ctx context.Context, visit *models.VisitLog) error {
	r.nextID++
	visit.ID = r.nextID
	visit.CreatedAt = time.Now()
	r.visits[visit.ID] = visit
	return nil
}

func (r *fakeVisitLogRepo) GetByID(ctx context.Context, id uint) (*models.VisitLog, error) {
	visit, ok := r.visits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return visit, nil
}

func (r *fakeVisitLogRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.VisitLog, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeVisitLogRepo) List(ctx context.Context, filters repositories.VisitLogFilters) ([]*models.VisitLog, int64, error) {
	var out []*models.VisitLog
	for _, visit := range r.visits {
		if filters.Status != nil && visit.Status != *filters.Status {
			continue
		}
		if filters.ActionTaken != nil && visit.ActionTaken != *filters.ActionTaken {
			continue
		}
		out = append(out, visit)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVisitLogRepo) Update(ctx context.Context, visit *models.VisitLog) error {
	if _, ok := r.visits[visit.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.visits[visit.ID] = visit
	return nil
}

// ===== TODO =====

type fakeTodoRepo struct {
	tasks  map[uint]*models.ToDoTask
	nextID uint
}

func (r *fakeTodoRepo) Create(ctx context.Context, task *models.ToDoTask) error {
	r.nextID++
	task.ID = r.nextID
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTodoRepo) GetByIDAndUser(ctx context.Context, id, userID uint) (*models.ToDoTask, error) {
	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (r *fakeTodoRepo) ListByUser(ctx context.Context, userID uint, filters repositories.TodoFilters) ([]*models.ToDoTask, int64, error) {
	var out []*models.ToDoTask
	for _, task := range r.tasks {
		if task.UserID != userID {
			continue
		}
		if filters.Completed != nil && task.Completed != *filters.Completed {
			continue
		}
		out = append(out, task)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTodoRepo) Update(ctx context.Context, task *models.ToDoTask) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTodoRepo) Delete(ctx context.Context, id, userID uint) error {
	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.tasks, id)
	return nil
}

// ===== DASHBOARD =====

type fakeDashboardRepo struct {
	counts repositories.DashboardCounts
}

func (r *fakeDashboardRepo) GetCounts(ctx context.Context, lowPerformerCutoff int) (*repositories.DashboardCounts, error) {
	c := r.counts
	return &c, nil
}
