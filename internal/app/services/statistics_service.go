package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/helpers"
)

// DefaultTrendDays is the behavior-trends window when none is given
const DefaultTrendDays = 7

// StatisticsService computes dashboard figures from behavior facts
type StatisticsService interface {
	GetStatistics(ctx context.Context, grade, startDate, endDate string) (*models.Statistics, error)
	GetBehaviorTrends(ctx context.Context, days int) (*models.BehaviorTrends, error)
	GetGradeComparison(ctx context.Context) (*models.GradeComparison, error)
	GetBehaviorTypeStats(ctx context.Context) ([]models.BehaviorTypeCount, error)
}

type statisticsServiceImpl struct {
	factRepo repositories.IBehaviorFactRepository
	typeRepo repositories.IBehaviorTypeRepository
	loc      *time.Location
	now      func() time.Time
	logger   zerolog.Logger
}

// NewStatisticsService creates a statistics service bucketing days in loc
func NewStatisticsService(
	factRepo repositories.IBehaviorFactRepository,
	typeRepo repositories.IBehaviorTypeRepository,
	loc *time.Location,
	logger zerolog.Logger,
) StatisticsService {
	if loc == nil {
		loc = time.Local
	}
	return &statisticsServiceImpl{
		factRepo: factRepo,
		typeRepo: typeRepo,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// parseFilter turns raw query values into a fact filter
func (s *statisticsServiceImpl) parseFilter(grade, startDate, endDate string) (models.BehaviorFilter, error) {
	filter := models.BehaviorFilter{Grade: grade}

	from, err := helpers.ParseDateBound(startDate, s.loc, false)
	if err != nil {
		return filter, apperrors.NewValidationError("start_date", "start_date must be YYYY-MM-DD or RFC3339")
	}
	to, err := helpers.ParseDateBound(endDate, s.loc, true)
	if err != nil {
		return filter, apperrors.NewValidationError("end_date", "end_date must be YYYY-MM-DD or RFC3339")
	}
	if from != nil && to != nil && !from.Before(*to) {
		return filter, apperrors.NewValidationError("start_date", "start_date must not be after end_date")
	}

	filter.From = from
	filter.To = to
	return filter, nil
}

func (s *statisticsServiceImpl) facts(ctx context.Context, filter models.BehaviorFilter) ([]models.BehaviorFact, error) {
	facts, err := s.factRepo.BehaviorFacts(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("grade", filter.Grade).Msg("Failed to load behavior facts")
		return nil, apperrors.NewStorageFailure("load behavior facts", err)
	}
	return facts, nil
}

// GetStatistics returns the filtered dashboard rollup
func (s *statisticsServiceImpl) GetStatistics(ctx context.Context, grade, startDate, endDate string) (*models.Statistics, error) {
	filter, err := s.parseFilter(grade, startDate, endDate)
	if err != nil {
		return nil, err
	}

	facts, err := s.facts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return aggregateStatistics(facts, s.loc), nil
}

// GetBehaviorTrends returns days+1 zero-filled daily counts ending today
func (s *statisticsServiceImpl) GetBehaviorTrends(ctx context.Context, days int) (*models.BehaviorTrends, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	start := helpers.StartOfDay(s.now(), s.loc).AddDate(0, 0, -days)
	facts, err := s.facts(ctx, models.BehaviorFilter{From: &start})
	if err != nil {
		return nil, err
	}
	return zeroFilledTrend(facts, start, days, s.loc), nil
}

// GetGradeComparison returns per-grade counts over every behavior
func (s *statisticsServiceImpl) GetGradeComparison(ctx context.Context) (*models.GradeComparison, error) {
	facts, err := s.facts(ctx, models.BehaviorFilter{})
	if err != nil {
		return nil, err
	}

	violations, excellent := gradeCounts(facts)
	return &models.GradeComparison{
		Grades:     append([]string(nil), models.GradeLevels...),
		Violations: violations,
		Excellents: excellent,
	}, nil
}

// GetBehaviorTypeStats returns usage counts for every behavior type
func (s *statisticsServiceImpl) GetBehaviorTypeStats(ctx context.Context) ([]models.BehaviorTypeCount, error) {
	types, err := s.typeRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.NewStorageFailure("load behavior types", err)
	}

	facts, err := s.facts(ctx, models.BehaviorFilter{})
	if err != nil {
		return nil, err
	}
	return typeUsage(types, facts), nil
}
