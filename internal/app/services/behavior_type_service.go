package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
)

// BehaviorTypeService manages the behavior type vocabulary
type BehaviorTypeService interface {
	CreateBehaviorType(ctx context.Context, req *dto.BehaviorTypeRequest) (*models.BehaviorType, error)
	GetAllBehaviorTypes(ctx context.Context) ([]*models.BehaviorType, error)
	UpdateBehaviorType(ctx context.Context, id int64, req *dto.BehaviorTypeRequest) (*models.BehaviorType, error)
	DeleteBehaviorType(ctx context.Context, id int64) error
}

type behaviorTypeServiceImpl struct {
	typeRepo repositories.IBehaviorTypeRepository
}

// NewBehaviorTypeService creates a new behavior type service instance
func NewBehaviorTypeService(typeRepo repositories.IBehaviorTypeRepository) BehaviorTypeService {
	return &behaviorTypeServiceImpl{typeRepo: typeRepo}
}

// toModel normalizes the category and rejects anything that is not one of the two sides
func (s *behaviorTypeServiceImpl) toModel(req *dto.BehaviorTypeRequest) (*models.BehaviorType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name cannot be empty")
	}

	category, ok := models.ParseBehaviorCategory(req.Category)
	if !ok {
		return nil, apperrors.NewValidationError("category", "category must be 违纪 or 优秀")
	}

	return &models.BehaviorType{
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
	}, nil
}

func (s *behaviorTypeServiceImpl) CreateBehaviorType(ctx context.Context, req *dto.BehaviorTypeRequest) (*models.BehaviorType, error) {
	bt, err := s.toModel(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.typeRepo.FindByName(ctx, bt.Name)
	if err == nil && existing != nil {
		return nil, apperrors.ErrBehaviorTypeAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrBehaviorTypeNotFound) {
		return nil, err
	}

	if _, err := s.typeRepo.Create(ctx, bt); err != nil {
		return nil, err
	}
	return bt, nil
}

func (s *behaviorTypeServiceImpl) GetAllBehaviorTypes(ctx context.Context) ([]*models.BehaviorType, error) {
	return s.typeRepo.GetAll(ctx)
}

// UpdateBehaviorType renames or recategorizes a type. Behaviors follow a rename.
func (s *behaviorTypeServiceImpl) UpdateBehaviorType(ctx context.Context, id int64, req *dto.BehaviorTypeRequest) (*models.BehaviorType, error) {
	bt, err := s.toModel(req)
	if err != nil {
		return nil, err
	}
	bt.ID = id

	if err := s.typeRepo.Update(ctx, bt); err != nil {
		return nil, err
	}
	return s.typeRepo.GetByID(ctx, id)
}

// DeleteBehaviorType removes a type no behavior references
func (s *behaviorTypeServiceImpl) DeleteBehaviorType(ctx context.Context, id int64) error {
	return s.typeRepo.Delete(ctx, id)
}
