package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/db"
)

// StudentBatch is the view an import gets of its transaction
type StudentBatch interface {
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	// InsertIsolated inserts one student inside its own savepoint; on error only
	// that insert is undone.
	InsertIsolated(ctx context.Context, student *models.Student) error
}

// IStudentImportRepository runs an import batch in one transaction
type IStudentImportRepository interface {
	RunBatch(ctx context.Context, fn func(ctx context.Context, batch StudentBatch) error) error
}

// DefaultImportTimeout applies when no import timeout is configured
const DefaultImportTimeout = 5 * time.Minute

// StudentImportRepository commits a whole batch at once, or nothing if fn fails
type StudentImportRepository struct {
	db      *db.PostgresDB
	timeout time.Duration
}

// NewStudentImportRepository creates a new StudentImportRepository whose batches may run for timeout
func NewStudentImportRepository(database *db.PostgresDB, timeout time.Duration) *StudentImportRepository {
	if timeout <= 0 {
		timeout = DefaultImportTimeout
	}
	return &StudentImportRepository{db: database, timeout: timeout}
}

// batchContext gives the batch its own deadline so the generic transaction default does not apply.
// An earlier deadline already on ctx still wins.
func (r *StudentImportRepository) batchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// RunBatch opens the transaction, hands fn a batch bound to it and commits when fn returns nil
func (r *StudentImportRepository) RunBatch(ctx context.Context, fn func(ctx context.Context, batch StudentBatch) error) error {
	ctx, cancel := r.batchContext(ctx)
	defer cancel()

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &txStudentBatch{tx: tx, students: NewStudentRepository(tx)})
	})
}

type txStudentBatch struct {
	tx       pgx.Tx
	students *StudentRepository
}

func (b *txStudentBatch) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	return b.students.ExistsByStudentID(ctx, studentID)
}

func (b *txStudentBatch) InsertIsolated(ctx context.Context, student *models.Student) error {
	return db.WithSavepoint(ctx, b.tx, func(ctx context.Context, sp pgx.Tx) error {
		_, err := NewStudentRepository(sp).Create(ctx, student)
		return err
	})
}
