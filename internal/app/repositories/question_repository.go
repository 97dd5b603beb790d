package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
)

// QuestionDetails is the read model for a question, joining the poster's name.
// PosterName is derived at read time and masked for anonymous questions; it is
// never persisted.
type QuestionDetails struct {
	ID          int64     `db:"id" json:"id"`
	CourseID    int64     `db:"course_id" json:"courseId"`
	PosterID    int64     `db:"poster_id" json:"posterId"`
	PosterName  string    `json:"posterName"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	IsAnonymous bool      `db:"is_anonymous" json:"isAnonymous"`
	IsResolved  bool      `db:"is_resolved" json:"isResolved"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// selectQuestionDetailsQuery builds the shared select with the poster join
func (r *QuestionRepository) selectQuestionDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"q.id", "q.course_id", "q.poster_id", "q.title", "q.content",
		"q.is_anonymous", "q.is_resolved", "q.created_at", "q.updated_at",
		"s.first_name", "s.last_name",
	).From("questions q").
		Join("students s ON q.poster_id = s.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanQuestionDetails scans a row into QuestionDetails, masking the poster
// name for anonymous questions.
func ScanQuestionDetails(row pgx.Row) (*QuestionDetails, error) {
	var q QuestionDetails
	var firstName, lastName string
	err := row.Scan(
		&q.ID, &q.CourseID, &q.PosterID, &q.Title, &q.Content,
		&q.IsAnonymous, &q.IsResolved, &q.CreatedAt, &q.UpdatedAt,
		&firstName, &lastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, err
	}

	if q.IsAnonymous {
		q.PosterName = models.AnonymousPosterName
	} else {
		q.PosterName = firstName + " " + lastName
	}

	return &q, nil
}

// Create inserts a new question. Questions always start open.
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) (int64, error) {
	sql, args, err := squirrel.Insert("questions").
		Columns("course_id", "poster_id", "title", "content", "is_anonymous", "is_resolved").
		Values(question.CourseID, question.PosterID, question.Title, question.Content, question.IsAnonymous, false).
		Suffix("RETURNING id, is_resolved, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create question SQL")
		return 0, err
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&question.ID, &question.IsResolved, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create question query")
		return 0, err
	}

	return question.ID, nil
}

// GetByID retrieves the raw question row (no joins). Used by update/delete
// paths that need the stored poster id.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := squirrel.Select(
		"id", "course_id", "poster_id", "title", "content",
		"is_anonymous", "is_resolved", "created_at", "updated_at",
	).From("questions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var q models.Question
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&q.ID, &q.CourseID, &q.PosterID, &q.Title, &q.Content,
		&q.IsAnonymous, &q.IsResolved, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, err
	}

	return &q, nil
}

// GetDetailsByID retrieves a question with the derived poster name
func (r *QuestionRepository) GetDetailsByID(ctx context.Context, id int64) (*QuestionDetails, error) {
	sqlStr, args, err := r.selectQuestionDetailsQuery().Where(squirrel.Eq{"q.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get question by ID SQL")
		return nil, err
	}

	return ScanQuestionDetails(r.db.QueryRow(ctx, sqlStr, args...))
}

// ListForCourse retrieves a course's questions in the requested order.
// answered/unanswered filter on is_resolved and order newest-first;
// newest/oldest apply no filter and differ only in direction.
func (r *QuestionRepository) ListForCourse(ctx context.Context, courseID int64, sort models.QuestionSort) ([]*QuestionDetails, error) {
	sqlBuilder := r.selectQuestionDetailsQuery().Where(squirrel.Eq{"q.course_id": courseID})

	switch sort {
	case models.QuestionSortOldest:
		sqlBuilder = sqlBuilder.OrderBy("q.created_at ASC")
	case models.QuestionSortAnswered:
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"q.is_resolved": true}).OrderBy("q.created_at DESC")
	case models.QuestionSortUnanswered:
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"q.is_resolved": false}).OrderBy("q.created_at DESC")
	default:
		sqlBuilder = sqlBuilder.OrderBy("q.created_at DESC")
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list questions SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list questions query")
		return nil, err
	}
	defer rows.Close()

	questions := make([]*QuestionDetails, 0)
	for rows.Next() {
		q, err := ScanQuestionDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning question row")
			return nil, err
		}
		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// Update writes the mutable fields of an existing question and refreshes
// updated_at.
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	sql, args, err := squirrel.Update("questions").
		Set("title", question.Title).
		Set("content", question.Content).
		Set("is_resolved", question.IsResolved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": question.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update question SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update question query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// Delete removes a question using the given querier, so the cascade can run
// it inside a transaction. Returns the number of rows removed.
func (r *QuestionRepository) Delete(ctx context.Context, q Querier, id int64) (int64, error) {
	sql, args, err := squirrel.Delete("questions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error executing delete question query")
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}

// GetOwnerID fetches only the poster id of a question
func (r *QuestionRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRow(ctx, "SELECT poster_id FROM questions WHERE id = $1", id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrQuestionNotFound
		}
		return 0, err
	}
	return ownerID, nil
}
