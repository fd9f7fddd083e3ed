package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/filestorage"
	"github.com/yigit/conduct/internal/pkg/helpers"
)

// BehaviorService records behavior incidents
type BehaviorService interface {
	CreateBehavior(ctx context.Context, behavior *models.Behavior) (*models.Behavior, error)
	GetBehaviorByID(ctx context.Context, id int64) (*models.Behavior, error)
	ListBehaviors(ctx context.Context, studentID int64, page, size int) (*dto.BehaviorListResponse, error)
	UpdateBehavior(ctx context.Context, behavior *models.Behavior) (*models.Behavior, error)
	DeleteBehavior(ctx context.Context, id int64) error
}

type behaviorServiceImpl struct {
	behaviorRepo repositories.IBehaviorRepository
	studentRepo  repositories.IStudentRepository
	typeRepo     repositories.IBehaviorTypeRepository
	storage      filestorage.FileStorage
	now          func() time.Time
	logger       zerolog.Logger
}

// NewBehaviorService creates a new behavior service instance
func NewBehaviorService(
	behaviorRepo repositories.IBehaviorRepository,
	studentRepo repositories.IStudentRepository,
	typeRepo repositories.IBehaviorTypeRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) BehaviorService {
	return &behaviorServiceImpl{
		behaviorRepo: behaviorRepo,
		studentRepo:  studentRepo,
		typeRepo:     typeRepo,
		storage:      storage,
		now:          time.Now,
		logger:       logger,
	}
}

// checkReferences makes sure the student and the behavior type exist. A missing
// reference is the caller's mistake, so it is reported as a validation error.
func (s *behaviorServiceImpl) checkReferences(ctx context.Context, b *models.Behavior) error {
	if _, err := s.studentRepo.GetByID(ctx, b.StudentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.NewValidationError("student_id", fmt.Sprintf("student %d does not exist", b.StudentID))
		}
		return err
	}

	if _, err := s.typeRepo.FindByName(ctx, b.BehaviorType); err != nil {
		if errors.Is(err, apperrors.ErrBehaviorTypeNotFound) {
			return apperrors.NewValidationError("behavior_type", fmt.Sprintf("behavior type %q does not exist", b.BehaviorType))
		}
		return err
	}
	return nil
}

func (s *behaviorServiceImpl) prepare(ctx context.Context, b *models.Behavior) error {
	if b == nil {
		return fmt.Errorf("%w: behavior is nil", apperrors.ErrValidationFailed)
	}
	if b.BehaviorType == "" {
		return apperrors.NewValidationError("behavior_type", "behavior_type cannot be empty")
	}
	if err := s.checkReferences(ctx, b); err != nil {
		return err
	}
	if b.OccurredAt.IsZero() {
		b.OccurredAt = s.now()
	}
	return nil
}

// CreateBehavior records an incident, stamping it with the current time when no date is given
func (s *behaviorServiceImpl) CreateBehavior(ctx context.Context, behavior *models.Behavior) (*models.Behavior, error) {
	if err := s.prepare(ctx, behavior); err != nil {
		return nil, err
	}
	if _, err := s.behaviorRepo.Create(ctx, behavior); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("behaviorID", behavior.ID).
		Int64("studentID", behavior.StudentID).
		Str("type", behavior.BehaviorType).
		Msg("Behavior recorded")
	return behavior, nil
}

func (s *behaviorServiceImpl) GetBehaviorByID(ctx context.Context, id int64) (*models.Behavior, error) {
	return s.behaviorRepo.GetByID(ctx, id)
}

// ListBehaviors returns one page of the log, newest first
func (s *behaviorServiceImpl) ListBehaviors(ctx context.Context, studentID int64, page, size int) (*dto.BehaviorListResponse, error) {
	p := helpers.NewPage(page, size)
	offset, limit := p.OffsetLimit()

	items, total, err := s.behaviorRepo.List(ctx, repositories.BehaviorListFilter{StudentID: studentID}, offset, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.BehaviorDetail{}
	}

	return &dto.BehaviorListResponse{
		Items:      items,
		Pagination: p.Info(total),
	}, nil
}

// UpdateBehavior replaces a behavior record
func (s *behaviorServiceImpl) UpdateBehavior(ctx context.Context, behavior *models.Behavior) (*models.Behavior, error) {
	if err := s.prepare(ctx, behavior); err != nil {
		return nil, err
	}
	if err := s.behaviorRepo.Update(ctx, behavior); err != nil {
		return nil, err
	}
	return s.behaviorRepo.GetByID(ctx, behavior.ID)
}

// DeleteBehavior removes the record, then its evidence image when the image is stored locally
func (s *behaviorServiceImpl) DeleteBehavior(ctx context.Context, id int64) error {
	behavior, err := s.behaviorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.behaviorRepo.Delete(ctx, id); err != nil {
		return err
	}

	if behavior.ImageURL != "" && s.storage.GetFullPath(behavior.ImageURL) != "" {
		if err := s.storage.DeleteFile(behavior.ImageURL); err != nil {
			s.logger.Warn().Err(err).Int64("behaviorID", id).Str("url", behavior.ImageURL).Msg("Evidence image left behind")
		}
	}
	return nil
}
