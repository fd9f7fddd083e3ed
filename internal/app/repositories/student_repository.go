package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/dberrors"
	"github.com/yigit/conduct/internal/pkg/logger"
)

// StudentFilter narrows the student list. Empty fields are ignored.
type StudentFilter struct {
	Grade  string
	Class  string
	Search string // matches name or student_id
}

// IStudentRepository defines the interface for student persistence
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	List(ctx context.Context, filter StudentFilter) ([]*models.Student, error)
	CountBehaviorsByCategory(ctx context.Context, studentIDs []int64) ([]models.CategoryCount, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository. db may be the pool or a transaction.
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

var studentColumns = []string{
	"id", "student_id", "name", "grade", "class", "photo_url",
	"address", "emergency_contact", "emergency_phone", "notes",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.StudentID, &s.Name, &s.Grade, &s.Class, &s.PhotoURL,
		&s.Address, &s.EmergencyContact, &s.EmergencyPhone, &s.Notes)
	return s, err
}

func studentValues(s *models.Student) map[string]interface{} {
	return map[string]interface{}{
		"student_id":        s.StudentID,
		"name":              s.Name,
		"grade":             s.Grade,
		"class":             s.Class,
		"photo_url":         s.PhotoURL,
		"address":           s.Address,
		"emergency_contact": s.EmergencyContact,
		"emergency_phone":   s.EmergencyPhone,
		"notes":             s.Notes,
	}
}

// Create inserts a student and returns the generated id. The raw database error is
// returned wrapped so callers can still classify it; a unique violation on
// student_id becomes ErrStudentIDAlreadyExists.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		SetMap(studentValues(student)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return 0, fmt.Errorf("%w: %w", apperrors.ErrStudentIDAlreadyExists, err)
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	student.ID = id
	return id, nil
}

// GetByID retrieves a student by its generated id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindByStudentID retrieves a student by the external school number
func (r *StudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"student_id": studentID})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// ExistsByStudentID reports whether the external school number is already registered
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	sql, args, err := existsQuery(r.sb.Select("1").From("students").Where(squirrel.Eq{"student_id": studentID}))
	if err != nil {
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// List returns students ordered by grade, class and school number
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	q := r.sb.Select(studentColumns...).From("students")
	if filter.Grade != "" {
		q = q.Where(squirrel.Eq{"grade": filter.Grade})
	}
	if filter.Class != "" {
		q = q.Where(squirrel.Eq{"class": filter.Class})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{squirrel.ILike{"name": pattern}, squirrel.ILike{"student_id": pattern}})
	}

	sql, args, err := q.OrderBy("grade ASC", "class ASC", "student_id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// CountBehaviorsByCategory groups behavior counts per student and category. The caller
// decides which side each category falls on.
func (r *StudentRepository) CountBehaviorsByCategory(ctx context.Context, studentIDs []int64) ([]models.CategoryCount, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select("b.student_id", "bt.category", "COUNT(*)").
		From("behaviors b").
		Join("behavior_types bt ON bt.name = b.behavior_type").
		Where(squirrel.Eq{"b.student_id": studentIDs}).
		GroupBy("b.student_id", "bt.category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build behavior count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting behaviors: %w", err)
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.StudentID, &c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning behavior count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Update replaces every editable field of a student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(studentValues(student)).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student. Students that still own behavior records are refused.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	checkSQL, checkArgs, err := existsQuery(r.sb.Select("1").From("behaviors").Where(squirrel.Eq{"student_id": id}))
	if err != nil {
		return fmt.Errorf("failed to build check behaviors query: %w", err)
	}

	var hasBehaviors bool
	if err := r.db.QueryRow(ctx, checkSQL, checkArgs...).Scan(&hasBehaviors); err != nil {
		return fmt.Errorf("error checking student behaviors: %w", err)
	}
	if hasBehaviors {
		return apperrors.ErrStudentHasBehaviors
	}

	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		// a behavior inserted between the check and the delete
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrStudentHasBehaviors
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
