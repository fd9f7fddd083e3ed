package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/conduct/internal/db"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the repositories run statements on
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	StudentRepository       *StudentRepository
	BehaviorTypeRepository  *BehaviorTypeRepository
	BehaviorRepository      *BehaviorRepository
	BehaviorFactRepository  *BehaviorFactRepository
	StudentImportRepository *StudentImportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB, importTimeout time.Duration) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(database.Pool),
		StudentRepository:       NewStudentRepository(database.Pool),
		BehaviorTypeRepository:  NewBehaviorTypeRepository(database.Pool),
		BehaviorRepository:      NewBehaviorRepository(database.Pool),
		BehaviorFactRepository:  NewBehaviorFactRepository(database.Pool),
		StudentImportRepository: NewStudentImportRepository(database, importTimeout),
	}
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// existsQuery wraps a select in SELECT EXISTS (...)
func existsQuery(sb squirrel.SelectBuilder) (string, []interface{}, error) {
	return sb.Prefix("SELECT EXISTS (").Suffix(")").Limit(1).ToSql()
}
