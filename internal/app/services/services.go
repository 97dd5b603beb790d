package services

import (
	"context"
	"time"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/repositories"
	"github.com/coursetalk/coursetalk/internal/db"
)

// Services defined in this package:
// - AuthService: registration and login
// - StudentService: student profiles and enrollment views
// - CourseService: course catalog and recent-activity counters
// - QuestionService: question lifecycle including cascade delete
// - ResponseService: response lifecycle and notification fan-out
// - NotificationService: per-student notification feed and read state

// The stores below are the repository surface each service consumes. The
// concrete repositories in the repositories package satisfy them; tests
// substitute in-memory fakes.

// StudentStore is the student persistence surface
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
}

// CourseStore is the course persistence surface
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListForStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
	Enroll(ctx context.Context, courseID, studentID int64) error
	Unenroll(ctx context.Context, courseID, studentID int64) error
	CountRecentQuestions(ctx context.Context, courseIDs []int64, window time.Duration) (map[int64]int64, error)
}

// QuestionStore is the question persistence surface
type QuestionStore interface {
	Create(ctx context.Context, question *models.Question) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	GetDetailsByID(ctx context.Context, id int64) (*repositories.QuestionDetails, error)
	ListForCourse(ctx context.Context, courseID int64, sort models.QuestionSort) ([]*repositories.QuestionDetails, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, q repositories.Querier, id int64) (int64, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

// ResponseStore is the response persistence surface
type ResponseStore interface {
	Create(ctx context.Context, response *models.Response) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Response, error)
	GetDetailsByID(ctx context.Context, id int64) (*repositories.ResponseDetails, error)
	ListForQuestion(ctx context.Context, questionID int64, sort models.ResponseSort) ([]*repositories.ResponseDetails, error)
	Update(ctx context.Context, response *models.Response) error
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByQuestion(ctx context.Context, q repositories.Querier, questionID int64) (int64, error)
}

// NotificationStore is the notification persistence surface
type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	DeleteByQuestion(ctx context.Context, q repositories.Querier, questionID int64) (int64, error)
}

// Authorizer is the policy surface the content services consult before any
// mutation. AuthorizationService satisfies it.
type Authorizer interface {
	ValidateQuestionOwnership(ctx context.Context, questionID, studentID int64) error
	ValidateResponseOwnership(ctx context.Context, responseID, studentID int64) error
	ValidateHelpfulAuthority(ctx context.Context, questionID, studentID int64) error
	ValidateEnrollment(ctx context.Context, courseID, studentID int64) error
}

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}
