package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]models.StudentSummary, error)
	UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	GetBehaviorStats(ctx context.Context, id int64) ([]models.StudentTypeStat, error)
}

type studentServiceImpl struct {
	studentRepo  repositories.IStudentRepository
	behaviorRepo repositories.IBehaviorRepository
	logger       zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, behaviorRepo repositories.IBehaviorRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo:  studentRepo,
		behaviorRepo: behaviorRepo,
		logger:       logger,
	}
}

// validateStudent checks the fields the store requires
func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	if student.StudentID == "" {
		return apperrors.NewValidationError("student_id", "student_id cannot be empty")
	}
	if student.Name == "" {
		return apperrors.NewValidationError("name", "name cannot be empty")
	}
	if student.Grade == "" {
		return apperrors.NewValidationError("grade", "grade cannot be empty")
	}
	return nil
}

// CreateStudent stores a new student after a duplicate check on student_id
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	exists, err := s.studentRepo.ExistsByStudentID(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents returns students matching filter with their behavior counts per side
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]models.StudentSummary, error) {
	students, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.StudentSummary, 0, len(students))
	if len(students) == 0 {
		return summaries, nil
	}

	ids := make([]int64, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	counts, err := s.studentRepo.CountBehaviorsByCategory(ctx, ids)
	if err != nil {
		return nil, err
	}
	folded := foldStudentCounts(counts)

	for _, st := range students {
		t := folded[st.ID]
		summaries = append(summaries, models.StudentSummary{
			Student:        *st,
			ViolationCount: t.violations,
			ExcellentCount: t.excellent,
		})
	}
	return summaries, nil
}

// UpdateStudent replaces the full record. Moving to a student_id already held by
// another student is a conflict.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	other, err := s.studentRepo.FindByStudentID(ctx, student.StudentID)
	switch {
	case err == nil && other.ID != student.ID:
		return nil, apperrors.ErrStudentIDAlreadyExists
	case err != nil && !errors.Is(err, apperrors.ErrStudentNotFound):
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student with no behavior records
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentHasBehaviors) {
			s.logger.Info().Int64("studentID", id).Msg("Refused to delete student with behavior records")
		}
		return err
	}
	return nil
}

// GetBehaviorStats groups one student's behaviors by type
func (s *studentServiceImpl) GetBehaviorStats(ctx context.Context, id int64) ([]models.StudentTypeStat, error) {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	details, err := s.behaviorRepo.ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return groupByType(details), nil
}
