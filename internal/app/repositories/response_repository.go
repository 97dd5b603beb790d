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

// ResponseDetails is the read model for a response with the derived poster
// name, masked for anonymous responses.
type ResponseDetails struct {
	ID          int64     `db:"id" json:"id"`
	QuestionID  int64     `db:"question_id" json:"questionId"`
	PosterID    int64     `db:"poster_id" json:"posterId"`
	PosterName  string    `json:"posterName"`
	Content     string    `db:"content" json:"content"`
	IsAnonymous bool      `db:"is_anonymous" json:"isAnonymous"`
	IsHelpful   bool      `db:"is_helpful" json:"isHelpful"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ResponseRepository handles database operations for responses
type ResponseRepository struct {
	db *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository
func NewResponseRepository(db *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) selectResponseDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.question_id", "r.poster_id", "r.content",
		"r.is_anonymous", "r.is_helpful", "r.created_at", "r.updated_at",
		"s.first_name", "s.last_name",
	).From("responses r").
		Join("students s ON r.poster_id = s.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanResponseDetails scans a row into ResponseDetails, masking the poster
// name for anonymous responses.
func ScanResponseDetails(row pgx.Row) (*ResponseDetails, error) {
	var resp ResponseDetails
	var firstName, lastName string
	err := row.Scan(
		&resp.ID, &resp.QuestionID, &resp.PosterID, &resp.Content,
		&resp.IsAnonymous, &resp.IsHelpful, &resp.CreatedAt, &resp.UpdatedAt,
		&firstName, &lastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResponseNotFound
		}
		return nil, err
	}

	if resp.IsAnonymous {
		resp.PosterName = models.AnonymousPosterName
	} else {
		resp.PosterName = firstName + " " + lastName
	}

	return &resp, nil
}

// Create inserts a new response. The helpful flag always starts false.
func (r *ResponseRepository) Create(ctx context.Context, response *models.Response) (int64, error) {
	sql, args, err := squirrel.Insert("responses").
		Columns("question_id", "poster_id", "content", "is_anonymous", "is_helpful").
		Values(response.QuestionID, response.PosterID, response.Content, response.IsAnonymous, false).
		Suffix("RETURNING id, is_helpful, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create response SQL")
		return 0, err
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&response.ID, &response.IsHelpful, &response.CreatedAt, &response.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create response query")
		return 0, err
	}

	return response.ID, nil
}

// GetByID retrieves the raw response row (no joins)
func (r *ResponseRepository) GetByID(ctx context.Context, id int64) (*models.Response, error) {
	sql, args, err := squirrel.Select(
		"id", "question_id", "poster_id", "content",
		"is_anonymous", "is_helpful", "created_at", "updated_at",
	).From("responses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var resp models.Response
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&resp.ID, &resp.QuestionID, &resp.PosterID, &resp.Content,
		&resp.IsAnonymous, &resp.IsHelpful, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResponseNotFound
		}
		return nil, err
	}

	return &resp, nil
}

// GetDetailsByID retrieves a response with the derived poster name
func (r *ResponseRepository) GetDetailsByID(ctx context.Context, id int64) (*ResponseDetails, error) {
	sqlStr, args, err := r.selectResponseDetailsQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get response by ID SQL")
		return nil, err
	}

	return ScanResponseDetails(r.db.QueryRow(ctx, sqlStr, args...))
}

// ListForQuestion retrieves a question's responses, newest or oldest first
func (r *ResponseRepository) ListForQuestion(ctx context.Context, questionID int64, sort models.ResponseSort) ([]*ResponseDetails, error) {
	sqlBuilder := r.selectResponseDetailsQuery().Where(squirrel.Eq{"r.question_id": questionID})

	if sort == models.ResponseSortOldest {
		sqlBuilder = sqlBuilder.OrderBy("r.created_at ASC")
	} else {
		sqlBuilder = sqlBuilder.OrderBy("r.created_at DESC")
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list responses SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list responses query")
		return nil, err
	}
	defer rows.Close()

	responses := make([]*ResponseDetails, 0)
	for rows.Next() {
		resp, err := ScanResponseDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning response row")
			return nil, err
		}
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// Update writes the mutable fields of an existing response and refreshes
// updated_at.
func (r *ResponseRepository) Update(ctx context.Context, response *models.Response) error {
	sql, args, err := squirrel.Update("responses").
		Set("content", response.Content).
		Set("is_helpful", response.IsHelpful).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": response.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update response SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update response query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResponseNotFound
	}

	return nil
}

// Delete removes a single response. Returns the number of rows removed.
func (r *ResponseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	sql, args, err := squirrel.Delete("responses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("responseID", id).Msg("Error executing delete response query")
		return 0, err
	}

	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrResponseNotFound
	}

	return cmdTag.RowsAffected(), nil
}

// DeleteByQuestion removes all responses under a question using the given
// querier. Invoked only from the question cascade, which is already
// authorized; rerunning it is safe.
func (r *ResponseRepository) DeleteByQuestion(ctx context.Context, q Querier, questionID int64) (int64, error) {
	sql, args, err := squirrel.Delete("responses").
		Where(squirrel.Eq{"question_id": questionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error executing cascade delete responses query")
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}

// GetOwnerID fetches only the poster id of a response
func (r *ResponseRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRow(ctx, "SELECT poster_id FROM responses WHERE id = $1", id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResponseNotFound
		}
		return 0, err
	}
	return ownerID, nil
}
