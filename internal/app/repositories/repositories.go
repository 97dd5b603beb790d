package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the executor a query runs against. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so cascade helpers can run standalone or inside a
// transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	CourseRepository       *CourseRepository
	QuestionRepository     *QuestionRepository
	ResponseRepository     *ResponseRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(db),
		CourseRepository:       NewCourseRepository(db),
		QuestionRepository:     NewQuestionRepository(db),
		ResponseRepository:     NewResponseRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
