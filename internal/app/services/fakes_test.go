package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/repositories"
	"github.com/coursetalk/coursetalk/internal/db"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
)

// In-memory store fakes. They satisfy the store interfaces consumed by the
// services so behavior can be exercised without a database. The clock ticks
// one second per write to keep sort orders deterministic.

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) tick() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (s *fakeStudentStore) add(firstName, lastName string) *models.Student {
	s.nextID++
	student := &models.Student{
		ID:        s.nextID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@campus.edu",
		Age:       20,
	}
	s.students[student.ID] = student
	return student
}

func (s *fakeStudentStore) Create(ctx context.Context, student *models.Student) (int64, error) {
	for _, existing := range s.students {
		if existing.Email == student.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	student.ID = s.nextID
	copied := *student
	s.students[student.ID] = &copied
	return student.ID, nil
}

func (s *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (s *fakeStudentStore) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, student := range s.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

type fakeCourseStore struct {
	courses      map[int64]*models.Course
	enrollments  map[[2]int64]bool
	recentCounts map[int64]int64
	nextID       int64
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:      make(map[int64]*models.Course),
		enrollments:  make(map[[2]int64]bool),
		recentCounts: make(map[int64]int64),
	}
}

func (s *fakeCourseStore) Create(ctx context.Context, course *models.Course) (int64, error) {
	for _, existing := range s.courses {
		if existing.Code == course.Code {
			return 0, apperrors.ErrCourseCodeExists
		}
	}
	s.nextID++
	course.ID = s.nextID
	copied := *course
	s.courses[course.ID] = &copied
	return course.ID, nil
}

func (s *fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (s *fakeCourseStore) ListForStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	var out []*models.Course
	for key, enrolled := range s.enrollments {
		if enrolled && key[1] == studentID {
			if course, ok := s.courses[key[0]]; ok {
				copied := *course
				out = append(out, &copied)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCourseStore) Enroll(ctx context.Context, courseID, studentID int64) error {
	if _, ok := s.courses[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	s.enrollments[[2]int64{courseID, studentID}] = true
	return nil
}

func (s *fakeCourseStore) Unenroll(ctx context.Context, courseID, studentID int64) error {
	delete(s.enrollments, [2]int64{courseID, studentID})
	return nil
}

func (s *fakeCourseStore) CountRecentQuestions(ctx context.Context, courseIDs []int64, window time.Duration) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, id := range courseIDs {
		if c, ok := s.recentCounts[id]; ok && c > 0 {
			counts[id] = c
		}
	}
	return counts, nil
}

type fakeQuestionStore struct {
	questions map[int64]*models.Question
	students  *fakeStudentStore
	clock     *fakeClock
	nextID    int64
}

func newFakeQuestionStore(students *fakeStudentStore, clock *fakeClock) *fakeQuestionStore {
	return &fakeQuestionStore{
		questions: make(map[int64]*models.Question),
		students:  students,
		clock:     clock,
	}
}

func (s *fakeQuestionStore) Create(ctx context.Context, question *models.Question) (int64, error) {
	s.nextID++
	question.ID = s.nextID
	question.IsResolved = false
	question.CreatedAt = s.clock.tick()
	question.UpdatedAt = question.CreatedAt
	copied := *question
	s.questions[question.ID] = &copied
	return question.ID, nil
}

func (s *fakeQuestionStore) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	question, ok := s.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	copied := *question
	return &copied, nil
}

func (s *fakeQuestionStore) details(question *models.Question) *repositories.QuestionDetails {
	d := &repositories.QuestionDetails{
		ID:          question.ID,
		CourseID:    question.CourseID,
		PosterID:    question.PosterID,
		Title:       question.Title,
		Content:     question.Content,
		IsAnonymous: question.IsAnonymous,
		IsResolved:  question.IsResolved,
		CreatedAt:   question.CreatedAt,
		UpdatedAt:   question.UpdatedAt,
	}
	if question.IsAnonymous {
		d.PosterName = models.AnonymousPosterName
	} else if poster, ok := s.students.students[question.PosterID]; ok {
		d.PosterName = poster.FirstName + " " + poster.LastName
	}
	return d
}

func (s *fakeQuestionStore) GetDetailsByID(ctx context.Context, id int64) (*repositories.QuestionDetails, error) {
	question, ok := s.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	return s.details(question), nil
}

func (s *fakeQuestionStore) ListForCourse(ctx context.Context, courseID int64, sortBy models.QuestionSort) ([]*repositories.QuestionDetails, error) {
	var out []*repositories.QuestionDetails
	for _, q := range s.questions {
		if q.CourseID != courseID {
			continue
		}
		if sortBy == models.QuestionSortAnswered && !q.IsResolved {
			continue
		}
		if sortBy == models.QuestionSortUnanswered && q.IsResolved {
			continue
		}
		out = append(out, s.details(q))
	}
	sort.Slice(out, func(i, j int) bool {
		if sortBy == models.QuestionSortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeQuestionStore) Update(ctx context.Context, question *models.Question) error {
	if _, ok := s.questions[question.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	question.UpdatedAt = s.clock.tick()
	copied := *question
	s.questions[question.ID] = &copied
	return nil
}

func (s *fakeQuestionStore) Delete(ctx context.Context, q repositories.Querier, id int64) (int64, error) {
	if _, ok := s.questions[id]; !ok {
		return 0, apperrors.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return 1, nil
}

func (s *fakeQuestionStore) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	question, ok := s.questions[id]
	if !ok {
		return 0, apperrors.ErrQuestionNotFound
	}
	return question.PosterID, nil
}

type fakeResponseStore struct {
	responses map[int64]*models.Response
	students  *fakeStudentStore
	clock     *fakeClock
	nextID    int64
}

func newFakeResponseStore(students *fakeStudentStore, clock *fakeClock) *fakeResponseStore {
	return &fakeResponseStore{
		responses: make(map[int64]*models.Response),
		students:  students,
		clock:     clock,
	}
}

func (s *fakeResponseStore) Create(ctx context.Context, response *models.Response) (int64, error) {
	s.nextID++
	response.ID = s.nextID
	response.IsHelpful = false
	response.CreatedAt = s.clock.tick()
	response.UpdatedAt = response.CreatedAt
	copied := *response
	s.responses[response.ID] = &copied
	return response.ID, nil
}

func (s *fakeResponseStore) GetByID(ctx context.Context, id int64) (*models.Response, error) {
	response, ok := s.responses[id]
	if !ok {
		return nil, apperrors.ErrResponseNotFound
	}
	copied := *response
	return &copied, nil
}

func (s *fakeResponseStore) details(response *models.Response) *repositories.ResponseDetails {
	d := &repositories.ResponseDetails{
		ID:          response.ID,
		QuestionID:  response.QuestionID,
		PosterID:    response.PosterID,
		Content:     response.Content,
		IsAnonymous: response.IsAnonymous,
		IsHelpful:   response.IsHelpful,
		CreatedAt:   response.CreatedAt,
		UpdatedAt:   response.UpdatedAt,
	}
	if response.IsAnonymous {
		d.PosterName = models.AnonymousPosterName
	} else if poster, ok := s.students.students[response.PosterID]; ok {
		d.PosterName = poster.FirstName + " " + poster.LastName
	}
	return d
}

func (s *fakeResponseStore) GetDetailsByID(ctx context.Context, id int64) (*repositories.ResponseDetails, error) {
	response, ok := s.responses[id]
	if !ok {
		return nil, apperrors.ErrResponseNotFound
	}
	return s.details(response), nil
}

func (s *fakeResponseStore) ListForQuestion(ctx context.Context, questionID int64, sortBy models.ResponseSort) ([]*repositories.ResponseDetails, error) {
	var out []*repositories.ResponseDetails
	for _, r := range s.responses {
		if r.QuestionID == questionID {
			out = append(out, s.details(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if sortBy == models.ResponseSortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeResponseStore) Update(ctx context.Context, response *models.Response) error {
	if _, ok := s.responses[response.ID]; !ok {
		return apperrors.ErrResponseNotFound
	}
	response.UpdatedAt = s.clock.tick()
	copied := *response
	s.responses[response.ID] = &copied
	return nil
}

func (s *fakeResponseStore) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.responses[id]; !ok {
		return 0, apperrors.ErrResponseNotFound
	}
	delete(s.responses, id)
	return 1, nil
}

func (s *fakeResponseStore) DeleteByQuestion(ctx context.Context, q repositories.Querier, questionID int64) (int64, error) {
	var deleted int64
	for id, r := range s.responses {
		if r.QuestionID == questionID {
			delete(s.responses, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeNotificationStore struct {
	notifications map[int64]*models.Notification
	clock         *fakeClock
	nextID        int64
	failCreate    error
}

func newFakeNotificationStore(clock *fakeClock) *fakeNotificationStore {
	return &fakeNotificationStore{
		notifications: make(map[int64]*models.Notification),
		clock:         clock,
	}
}

func (s *fakeNotificationStore) Create(ctx context.Context, notification *models.Notification) (int64, error) {
	if s.failCreate != nil {
		return 0, s.failCreate
	}
	s.nextID++
	notification.ID = s.nextID
	notification.IsRead = false
	notification.CreatedAt = s.clock.tick()
	copied := *notification
	s.notifications[notification.ID] = &copied
	return notification.ID, nil
}

func (s *fakeNotificationStore) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	notification, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	copied := *notification
	return &copied, nil
}

func (s *fakeNotificationStore) ListForRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(ctx context.Context, id int64) (*models.Notification, error) {
	notification, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	notification.IsRead = true
	copied := *notification
	return &copied, nil
}

func (s *fakeNotificationStore) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	var modified int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			modified++
		}
	}
	return modified, nil
}

func (s *fakeNotificationStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) DeleteByQuestion(ctx context.Context, q repositories.Querier, questionID int64) (int64, error) {
	var deleted int64
	for id, n := range s.notifications {
		if n.QuestionID == questionID {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeAuthz applies the same ownership policy as the real authorization
// guard, against the fake stores.
type fakeAuthz struct {
	questions *fakeQuestionStore
	responses *fakeResponseStore
	enrolled  map[[2]int64]bool
}

func newFakeAuthz(questions *fakeQuestionStore, responses *fakeResponseStore) *fakeAuthz {
	return &fakeAuthz{
		questions: questions,
		responses: responses,
		enrolled:  make(map[[2]int64]bool),
	}
}

func (a *fakeAuthz) ValidateQuestionOwnership(ctx context.Context, questionID, studentID int64) error {
	ownerID, err := a.questions.GetOwnerID(ctx, questionID)
	if err != nil {
		return err
	}
	if ownerID != studentID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func (a *fakeAuthz) ValidateResponseOwnership(ctx context.Context, responseID, studentID int64) error {
	response, err := a.responses.GetByID(ctx, responseID)
	if err != nil {
		return err
	}
	if response.PosterID != studentID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func (a *fakeAuthz) ValidateHelpfulAuthority(ctx context.Context, questionID, studentID int64) error {
	ownerID, err := a.questions.GetOwnerID(ctx, questionID)
	if err != nil {
		return err
	}
	if ownerID != studentID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func (a *fakeAuthz) ValidateEnrollment(ctx context.Context, courseID, studentID int64) error {
	if !a.enrolled[[2]int64{courseID, studentID}] {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// fakeTxRunner runs the function directly; the fakes ignore the querier.
type fakeTxRunner struct {
	failWith error
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if r.failWith != nil {
		return r.failWith
	}
	var tx pgx.Tx
	return fn(ctx, tx)
}

var errStorageDown = errors.New("storage down")
