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
	"github.com/coursetalk/coursetalk/internal/pkg/dberrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
)

// CourseRepository handles database operations for courses and enrollment
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

var courseColumns = []string{
	"id", "code", "name", "section", "department",
	"instructor_name", "instructor_email", "term", "created_at", "updated_at",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.Code, &course.Name, &course.Section, &course.Department,
		&course.InstructorName, &course.InstructorEmail, &course.Term,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := squirrel.Insert("courses").
		Columns("code", "name", "section", "department", "instructor_name", "instructor_email", "term").
		Values(course.Code, course.Name, course.Section, course.Department,
			course.InstructorName, course.InstructorEmail, course.Term).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return 0, apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, err
	}

	return course.ID, nil
}

// GetByID retrieves a course by ID, including its enrolled student ids
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := squirrel.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}

	enrolled, err := r.enrolledStudentIDs(ctx, id)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error loading enrollment for course")
		return nil, err
	}
	course.EnrolledStudentIDs = enrolled

	return course, nil
}

// ListForStudent returns all courses whose enrollment set contains the student
func (r *CourseRepository) ListForStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := squirrel.Select(
		"c.id", "c.code", "c.name", "c.section", "c.department",
		"c.instructor_name", "c.instructor_email", "c.term", "c.created_at", "c.updated_at",
	).
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.code").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses for student SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses for student query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, err
		}
		courses = append(courses, course)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Enroll adds a student to a course. Repeating an enrollment is a no-op.
func (r *CourseRepository) Enroll(ctx context.Context, courseID, studentID int64) error {
	sql, args, err := squirrel.Insert("enrollments").
		Columns("course_id", "student_id").
		Values(courseID, studentID).
		Suffix("ON CONFLICT (course_id, student_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Int64("studentID", studentID).Msg("Error executing enroll query")
		return err
	}

	return nil
}

// Unenroll removes a student from a course
func (r *CourseRepository) Unenroll(ctx context.Context, courseID, studentID int64) error {
	sql, args, err := squirrel.Delete("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// IsEnrolled reports whether the student belongs to the course's enrollment set
func (r *CourseRepository) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND student_id = $2)`
	err := r.db.QueryRow(ctx, query, courseID, studentID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CountRecentQuestions counts questions created within the trailing window,
// grouped by course, for all supplied course ids in one query. Courses with
// no recent questions are absent from the result map.
func (r *CourseRepository) CountRecentQuestions(ctx context.Context, courseIDs []int64, window time.Duration) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	cutoff := time.Now().Add(-window)
	sql, args, err := squirrel.Select("course_id", "COUNT(*)").
		From("questions").
		Where(squirrel.Expr("course_id = ANY(?)", courseIDs)).
		Where(squirrel.Gt{"created_at": cutoff}).
		GroupBy("course_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building recent question count SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing recent question count query")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courseID, count int64
		if err := rows.Scan(&courseID, &count); err != nil {
			return nil, err
		}
		counts[courseID] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *CourseRepository) enrolledStudentIDs(ctx context.Context, courseID int64) ([]int64, error) {
	sql, args, err := squirrel.Select("student_id").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("student_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
