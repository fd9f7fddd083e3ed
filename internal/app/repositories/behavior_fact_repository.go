package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/pkg/logger"
)

// IBehaviorFactRepository is the single read path every statistic is computed from
type IBehaviorFactRepository interface {
	BehaviorFacts(ctx context.Context, filter models.BehaviorFilter) ([]models.BehaviorFact, error)
}

// BehaviorFactRepository joins behaviors with their student and type
type BehaviorFactRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewBehaviorFactRepository creates a new BehaviorFactRepository
func NewBehaviorFactRepository(db DBTX) *BehaviorFactRepository {
	return &BehaviorFactRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

// factsQuery builds the behaviors × students × behavior_types join for filter.
// From is inclusive, To exclusive.
func (r *BehaviorFactRepository) factsQuery(filter models.BehaviorFilter) squirrel.SelectBuilder {
	q := r.sb.Select("b.id", "b.student_id", "s.grade", "b.behavior_type", "bt.category", "b.occurred_at").
		From("behaviors b").
		Join("students s ON s.id = b.student_id").
		Join("behavior_types bt ON bt.name = b.behavior_type")

	if filter.Grade != "" {
		q = q.Where(squirrel.Eq{"s.grade": filter.Grade})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"b.occurred_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"b.occurred_at": *filter.To})
	}
	return q.OrderBy("b.occurred_at ASC", "b.id ASC")
}

// BehaviorFacts returns every behavior matching filter, oldest first
func (r *BehaviorFactRepository) BehaviorFacts(ctx context.Context, filter models.BehaviorFilter) ([]models.BehaviorFact, error) {
	sql, args, err := r.factsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build behavior facts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing behavior facts query")
		return nil, fmt.Errorf("error querying behavior facts: %w", err)
	}
	defer rows.Close()

	facts := []models.BehaviorFact{}
	for rows.Next() {
		var f models.BehaviorFact
		if err := rows.Scan(&f.BehaviorID, &f.StudentID, &f.Grade, &f.TypeName, &f.Category, &f.OccurredAt); err != nil {
			return nil, fmt.Errorf("error scanning behavior fact: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating behavior facts: %w", err)
	}
	return facts, nil
}
