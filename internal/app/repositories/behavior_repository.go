package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/dberrors"
	"github.com/yigit/conduct/internal/pkg/helpers"
	"github.com/yigit/conduct/internal/pkg/logger"
)

// BehaviorListFilter narrows the behavior log listing
type BehaviorListFilter struct {
	StudentID int64 // students.id, 0 for all
}

// IBehaviorRepository defines the interface for behavior log persistence
type IBehaviorRepository interface {
	Create(ctx context.Context, b *models.Behavior) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Behavior, error)
	List(ctx context.Context, filter BehaviorListFilter, offset uint64, limit int) ([]models.BehaviorDetail, int64, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.BehaviorDetail, error)
	Update(ctx context.Context, b *models.Behavior) error
	Delete(ctx context.Context, id int64) error
}

// BehaviorRepository handles behavior database operations
type BehaviorRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewBehaviorRepository creates a new BehaviorRepository
func NewBehaviorRepository(db DBTX) *BehaviorRepository {
	return &BehaviorRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func (r *BehaviorRepository) detailQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"b.id", "b.student_id", "b.behavior_type", "b.description", "b.occurred_at", "b.image_url", "b.created_at",
		"s.name", "s.grade", "s.class", "bt.category",
	).
		From("behaviors b").
		Join("students s ON s.id = b.student_id").
		Join("behavior_types bt ON bt.name = b.behavior_type")
}

func scanBehaviorDetail(row pgx.Row) (models.BehaviorDetail, error) {
	var d models.BehaviorDetail
	var description, imageURL sql.NullString
	err := row.Scan(&d.ID, &d.StudentID, &d.BehaviorType, &description, &d.OccurredAt, &imageURL, &d.CreatedAt,
		&d.StudentName, &d.Grade, &d.Class, &d.Category)
	d.Description = helpers.StringFromNull(description)
	d.ImageURL = helpers.StringFromNull(imageURL)
	return d, err
}

// Create inserts a behavior and fills in its id and created_at
func (r *BehaviorRepository) Create(ctx context.Context, b *models.Behavior) (int64, error) {
	sql, args, err := r.sb.Insert("behaviors").
		Columns("student_id", "behavior_type", "description", "occurred_at", "image_url").
		Values(b.StudentID, b.BehaviorType, helpers.GetContentNullString(b.Description), b.OccurredAt,
			helpers.GetContentNullString(b.ImageURL)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create behavior query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.NewValidationError("", "referenced student or behavior type does not exist")
		}
		logger.Error().Err(err).Int64("studentID", b.StudentID).Msg("Error creating behavior")
		return 0, fmt.Errorf("error creating behavior: %w", err)
	}
	return b.ID, nil
}

// GetByID retrieves a behavior by ID
func (r *BehaviorRepository) GetByID(ctx context.Context, id int64) (*models.Behavior, error) {
	query, args, err := r.sb.Select("id", "student_id", "behavior_type", "description", "occurred_at", "image_url", "created_at").
		From("behaviors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get behavior query: %w", err)
	}

	b := &models.Behavior{}
	var description, imageURL sql.NullString
	err = r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.StudentID, &b.BehaviorType, &description, &b.OccurredAt, &imageURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBehaviorNotFound
		}
		return nil, fmt.Errorf("error getting behavior: %w", err)
	}
	b.Description = helpers.StringFromNull(description)
	b.ImageURL = helpers.StringFromNull(imageURL)
	return b, nil
}

// List returns one page of the behavior log, newest first, with the total match count
func (r *BehaviorRepository) List(ctx context.Context, filter BehaviorListFilter, offset uint64, limit int) ([]models.BehaviorDetail, int64, error) {
	countQ := r.sb.Select("COUNT(*)").From("behaviors b")
	listQ := r.detailQuery()
	if filter.StudentID > 0 {
		countQ = countQ.Where(squirrel.Eq{"b.student_id": filter.StudentID})
		listQ = listQ.Where(squirrel.Eq{"b.student_id": filter.StudentID})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count behaviors query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting behaviors: %w", err)
	}

	sql, args, err := listQ.
		OrderBy("b.occurred_at DESC", "b.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list behaviors query: %w", err)
	}

	items, err := r.queryDetails(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByStudent returns every behavior of one student, newest first
func (r *BehaviorRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.BehaviorDetail, error) {
	sql, args, err := r.detailQuery().
		Where(squirrel.Eq{"b.student_id": studentID}).
		OrderBy("b.occurred_at DESC", "b.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student behaviors query: %w", err)
	}
	return r.queryDetails(ctx, sql, args)
}

func (r *BehaviorRepository) queryDetails(ctx context.Context, sql string, args []interface{}) ([]models.BehaviorDetail, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing behavior detail query")
		return nil, fmt.Errorf("error querying behaviors: %w", err)
	}
	defer rows.Close()

	items := []models.BehaviorDetail{}
	for rows.Next() {
		d, err := scanBehaviorDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning behavior row: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating behavior rows: %w", err)
	}
	return items, nil
}

// Update replaces a behavior record
func (r *BehaviorRepository) Update(ctx context.Context, b *models.Behavior) error {
	sql, args, err := r.sb.Update("behaviors").
		SetMap(map[string]interface{}{
			"student_id":    b.StudentID,
			"behavior_type": b.BehaviorType,
			"description":   helpers.GetContentNullString(b.Description),
			"occurred_at":   b.OccurredAt,
			"image_url":     helpers.GetContentNullString(b.ImageURL),
		}).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update behavior query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewValidationError("", "referenced student or behavior type does not exist")
		}
		logger.Error().Err(err).Int64("behaviorID", b.ID).Msg("Error executing update behavior query")
		return fmt.Errorf("error updating behavior: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBehaviorNotFound
	}
	return nil
}

// Delete removes a behavior record
func (r *BehaviorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("behaviors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete behavior query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting behavior: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBehaviorNotFound
	}
	return nil
}
