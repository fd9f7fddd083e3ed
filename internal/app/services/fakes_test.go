package services

import (
	"context"
	"sort"

	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
)

// fakeStudentBatch is an in-memory import transaction
type fakeStudentBatch struct {
	committed map[string]*models.Student
	pending   map[string]*models.Student
	insertErr map[string]error
	inserts   int
}

func (b *fakeStudentBatch) ExistsByStudentID(_ context.Context, studentID string) (bool, error) {
	if err, ok := b.insertErr["exists:"+studentID]; ok {
		return false, err
	}
	_, inCommitted := b.committed[studentID]
	_, inPending := b.pending[studentID]
	return inCommitted || inPending, nil
}

func (b *fakeStudentBatch) InsertIsolated(_ context.Context, s *models.Student) error {
	b.inserts++
	if err, ok := b.insertErr[s.StudentID]; ok {
		return err
	}
	b.pending[s.StudentID] = s
	return nil
}

// fakeImportRepo commits pending inserts only when the batch function succeeds
type fakeImportRepo struct {
	students  map[string]*models.Student
	insertErr map[string]error
	batches   int
	lastBatch *fakeStudentBatch
}

func newFakeImportRepo(existing ...string) *fakeImportRepo {
	r := &fakeImportRepo{students: map[string]*models.Student{}, insertErr: map[string]error{}}
	for _, id := range existing {
		r.students[id] = &models.Student{StudentID: id}
	}
	return r
}

func (r *fakeImportRepo) RunBatch(ctx context.Context, fn func(ctx context.Context, batch repositories.StudentBatch) error) error {
	r.batches++
	batch := &fakeStudentBatch{committed: r.students, pending: map[string]*models.Student{}, insertErr: r.insertErr}
	r.lastBatch = batch
	if err := fn(ctx, batch); err != nil {
		return err
	}
	for id, s := range batch.pending {
		r.students[id] = s
	}
	return nil
}

// fakeFactRepo filters a fixed fact set the way the SQL query does
type fakeFactRepo struct {
	facts   []models.BehaviorFact
	err     error
	filters []models.BehaviorFilter
}

func (r *fakeFactRepo) BehaviorFacts(_ context.Context, filter models.BehaviorFilter) ([]models.BehaviorFact, error) {
	r.filters = append(r.filters, filter)
	if r.err != nil {
		return nil, r.err
	}
	var out []models.BehaviorFact
	for _, f := range r.facts {
		if filter.Grade != "" && f.Grade != filter.Grade {
			continue
		}
		if filter.From != nil && f.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !f.OccurredAt.Before(*filter.To) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// fakeTypeRepo keeps behavior types in insertion order
type fakeTypeRepo struct {
	types  []*models.BehaviorType
	inUse  map[int64]bool
	nextID int64
}

func newFakeTypeRepo(types ...models.BehaviorType) *fakeTypeRepo {
	r := &fakeTypeRepo{inUse: map[int64]bool{}}
	for i := range types {
		bt := types[i]
		_, _ = r.Create(context.Background(), &bt)
	}
	return r
}

func (r *fakeTypeRepo) Create(_ context.Context, bt *models.BehaviorType) (int64, error) {
	r.nextID++
	bt.ID = r.nextID
	r.types = append(r.types, bt)
	return bt.ID, nil
}

func (r *fakeTypeRepo) GetAll(context.Context) ([]*models.BehaviorType, error) {
	return r.types, nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id int64) (*models.BehaviorType, error) {
	for _, bt := range r.types {
		if bt.ID == id {
			return bt, nil
		}
	}
	return nil, apperrors.ErrBehaviorTypeNotFound
}

func (r *fakeTypeRepo) FindByName(_ context.Context, name string) (*models.BehaviorType, error) {
	for _, bt := range r.types {
		if bt.Name == name {
			return bt, nil
		}
	}
	return nil, apperrors.ErrBehaviorTypeNotFound
}

func (r *fakeTypeRepo) Update(_ context.Context, bt *models.BehaviorType) error {
	for i, existing := range r.types {
		if existing.ID == bt.ID {
			r.types[i] = bt
			return nil
		}
	}
	return apperrors.ErrBehaviorTypeNotFound
}

func (r *fakeTypeRepo) Delete(_ context.Context, id int64) error {
	if r.inUse[id] {
		return apperrors.ErrBehaviorTypeInUse
	}
	for i, bt := range r.types {
		if bt.ID == id {
			r.types = append(r.types[:i], r.types[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrBehaviorTypeNotFound
}

// fakeStudentRepo stores students by generated id
type fakeStudentRepo struct {
	students  map[int64]*models.Student
	counts    []models.CategoryCount
	behaviors map[int64]int
	nextID    int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]*models.Student{}, behaviors: map[int64]int{}}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) (int64, error) {
	r.nextID++
	s.ID = r.nextID
	r.students[s.ID] = s
	return s.ID, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if s, ok := r.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) FindByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	for _, s := range r.students {
		if s.StudentID == studentID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	_, err := r.FindByStudentID(ctx, studentID)
	return err == nil, nil
}

func (r *fakeStudentRepo) List(_ context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, s := range r.students {
		if filter.Grade != "" && s.Grade != filter.Grade {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (r *fakeStudentRepo) CountBehaviorsByCategory(context.Context, []int64) ([]models.CategoryCount, error) {
	return r.counts, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *models.Student) error {
	if _, ok := r.students[s.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[s.ID] = s
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if r.behaviors[id] > 0 {
		return apperrors.ErrStudentHasBehaviors
	}
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

// fakeBehaviorRepo is a slice backed behavior log
type fakeBehaviorRepo struct {
	behaviors []*models.Behavior
	details   []models.BehaviorDetail
	lastLimit int
	lastOff   uint64
}

func (r *fakeBehaviorRepo) Create(_ context.Context, b *models.Behavior) (int64, error) {
	b.ID = int64(len(r.behaviors) + 1)
	r.behaviors = append(r.behaviors, b)
	return b.ID, nil
}

func (r *fakeBehaviorRepo) GetByID(_ context.Context, id int64) (*models.Behavior, error) {
	for _, b := range r.behaviors {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.ErrBehaviorNotFound
}

func (r *fakeBehaviorRepo) List(_ context.Context, _ repositories.BehaviorListFilter, offset uint64, limit int) ([]models.BehaviorDetail, int64, error) {
	r.lastOff, r.lastLimit = offset, limit
	return r.details, int64(len(r.details)), nil
}

func (r *fakeBehaviorRepo) ListByStudent(_ context.Context, studentID int64) ([]models.BehaviorDetail, error) {
	var out []models.BehaviorDetail
	for _, d := range r.details {
		if d.StudentID == studentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeBehaviorRepo) Update(_ context.Context, b *models.Behavior) error {
	for i, existing := range r.behaviors {
		if existing.ID == b.ID {
			r.behaviors[i] = b
			return nil
		}
	}
	return apperrors.ErrBehaviorNotFound
}

func (r *fakeBehaviorRepo) Delete(_ context.Context, id int64) error {
	for i, b := range r.behaviors {
		if b.ID == id {
			r.behaviors = append(r.behaviors[:i], r.behaviors[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrBehaviorNotFound
}

// fakeUserRepo holds a single account
type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) (int64, error) {
	u.ID = int64(len(r.users) + 1)
	r.users = append(r.users, u)
	return u.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}
