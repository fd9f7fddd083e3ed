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

// IBehaviorTypeRepository defines the interface for the behavior type vocabulary
type IBehaviorTypeRepository interface {
	Create(ctx context.Context, bt *models.BehaviorType) (int64, error)
	GetAll(ctx context.Context) ([]*models.BehaviorType, error)
	GetByID(ctx context.Context, id int64) (*models.BehaviorType, error)
	FindByName(ctx context.Context, name string) (*models.BehaviorType, error)
	Update(ctx context.Context, bt *models.BehaviorType) error
	Delete(ctx context.Context, id int64) error
}

// BehaviorTypeRepository handles behavior type database operations
type BehaviorTypeRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewBehaviorTypeRepository creates a new BehaviorTypeRepository
func NewBehaviorTypeRepository(db DBTX) *BehaviorTypeRepository {
	return &BehaviorTypeRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

var behaviorTypeColumns = []string{"id", "name", "category", "description", "created_at"}

func scanBehaviorType(row pgx.Row) (*models.BehaviorType, error) {
	bt := &models.BehaviorType{}
	err := row.Scan(&bt.ID, &bt.Name, &bt.Category, &bt.Description, &bt.CreatedAt)
	return bt, err
}

// Create inserts a behavior type
func (r *BehaviorTypeRepository) Create(ctx context.Context, bt *models.BehaviorType) (int64, error) {
	sql, args, err := r.sb.Insert("behavior_types").
		Columns("name", "category", "description").
		Values(bt.Name, bt.Category, bt.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create behavior type query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&bt.ID, &bt.CreatedAt); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrBehaviorTypeAlreadyExists
		}
		logger.Error().Err(err).Str("name", bt.Name).Msg("Error creating behavior type")
		return 0, fmt.Errorf("error creating behavior type: %w", err)
	}
	return bt.ID, nil
}

// GetAll returns the vocabulary, violations first then by name
func (r *BehaviorTypeRepository) GetAll(ctx context.Context) ([]*models.BehaviorType, error) {
	sql, args, err := r.sb.Select(behaviorTypeColumns...).
		From("behavior_types").
		OrderBy("category DESC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list behavior types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list behavior types query")
		return nil, fmt.Errorf("error querying behavior types: %w", err)
	}
	defer rows.Close()

	types := []*models.BehaviorType{}
	for rows.Next() {
		bt, err := scanBehaviorType(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning behavior type row: %w", err)
		}
		types = append(types, bt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating behavior type rows: %w", err)
	}
	return types, nil
}

// GetByID retrieves a behavior type by ID
func (r *BehaviorTypeRepository) GetByID(ctx context.Context, id int64) (*models.BehaviorType, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindByName retrieves a behavior type by its unique name
func (r *BehaviorTypeRepository) FindByName(ctx context.Context, name string) (*models.BehaviorType, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *BehaviorTypeRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.BehaviorType, error) {
	sql, args, err := r.sb.Select(behaviorTypeColumns...).
		From("behavior_types").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get behavior type query: %w", err)
	}

	bt, err := scanBehaviorType(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBehaviorTypeNotFound
		}
		return nil, fmt.Errorf("error getting behavior type: %w", err)
	}
	return bt, nil
}

// Update renames or recategorizes a type; existing behaviors follow a rename through ON UPDATE CASCADE
func (r *BehaviorTypeRepository) Update(ctx context.Context, bt *models.BehaviorType) error {
	sql, args, err := r.sb.Update("behavior_types").
		SetMap(map[string]interface{}{
			"name":        bt.Name,
			"category":    bt.Category,
			"description": bt.Description,
		}).
		Where(squirrel.Eq{"id": bt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update behavior type query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrBehaviorTypeAlreadyExists
		}
		logger.Error().Err(err).Int64("behaviorTypeID", bt.ID).Msg("Error executing update behavior type query")
		return fmt.Errorf("error updating behavior type: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBehaviorTypeNotFound
	}
	return nil
}

// Delete removes a behavior type that no behavior references
func (r *BehaviorTypeRepository) Delete(ctx context.Context, id int64) error {
	checkSQL, checkArgs, err := existsQuery(r.sb.Select("1").
		From("behaviors b").
		Join("behavior_types bt ON bt.name = b.behavior_type").
		Where(squirrel.Eq{"bt.id": id}))
	if err != nil {
		return fmt.Errorf("failed to build check behavior type usage query: %w", err)
	}

	var inUse bool
	if err := r.db.QueryRow(ctx, checkSQL, checkArgs...).Scan(&inUse); err != nil {
		return fmt.Errorf("error checking behavior type usage: %w", err)
	}
	if inUse {
		return apperrors.ErrBehaviorTypeInUse
	}

	sql, args, err := r.sb.Delete("behavior_types").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete behavior type query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrBehaviorTypeInUse
		}
		return fmt.Errorf("error deleting behavior type: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBehaviorTypeNotFound
	}
	return nil
}
