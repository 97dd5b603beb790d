package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
)

type responseFixture struct {
	students      *fakeStudentStore
	questions     *fakeQuestionStore
	responses     *fakeResponseStore
	notifications *fakeNotificationStore
	service       ResponseService

	asker     *models.Student
	responder *models.Student
	question  *models.Question
}

func newResponseFixture(t *testing.T) *responseFixture {
	t.Helper()

	clock := newFakeClock()
	students := newFakeStudentStore()
	questions := newFakeQuestionStore(students, clock)
	responses := newFakeResponseStore(students, clock)
	notifications := newFakeNotificationStore(clock)
	authz := newFakeAuthz(questions, responses)

	f := &responseFixture{
		students:      students,
		questions:     questions,
		responses:     responses,
		notifications: notifications,
		service:       NewResponseService(responses, questions, notifications, authz),
	}

	f.asker = students.add("Ada", "Lovelace")
	f.responder = students.add("Alan", "Turing")

	f.question = &models.Question{CourseID: 1, PosterID: f.asker.ID, Title: "How does scanning work?", Content: "Details inside"}
	_, err := questions.Create(context.Background(), f.question)
	require.NoError(t, err)

	return f
}

func TestCreateResponseNotifiesQuestionPoster(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "Use the scan helper",
	})
	require.NoError(t, err)
	assert.False(t, created.IsHelpful)
	assert.Equal(t, "Alan Turing", created.PosterName)

	feed, err := f.notifications.ListForRecipient(ctx, f.asker.ID, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationNewResponse, feed[0].Type)
	assert.Equal(t, f.responder.ID, feed[0].SenderID)
	assert.Equal(t, f.question.ID, feed[0].QuestionID)
}

func TestCreateResponseToOwnQuestionSkipsNotification(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateResponse(ctx, f.asker.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "Answering my own question",
	})
	require.NoError(t, err)

	feed, err := f.notifications.ListForRecipient(ctx, f.asker.ID, false)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestCreateResponseSurvivesNotificationFailure(t *testing.T) {
	f := newResponseFixture(t)
	f.notifications.failCreate = errStorageDown
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "Still posts fine",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestCreateResponseValidation(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "   ",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    strings.Repeat("x", 1501),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: 999,
		Content:    "fine content",
	})
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestUpdateResponseContentRequiresPoster(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "original",
	})
	require.NoError(t, err)

	edit := "edited"
	_, err = f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{Content: &edit})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := f.service.UpdateResponse(ctx, created.ID, f.responder.ID, &dto.UpdateResponseRequest{Content: &edit})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestHelpfulMarkRequiresQuestionPoster(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "helpful answer",
	})
	require.NoError(t, err)

	helpful := true
	// The responder cannot mark their own answer; only the asker can.
	_, err = f.service.UpdateResponse(ctx, created.ID, f.responder.ID, &dto.UpdateResponseRequest{IsHelpful: &helpful})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{IsHelpful: &helpful})
	require.NoError(t, err)
	assert.True(t, updated.IsHelpful)

	feed, err := f.notifications.ListForRecipient(ctx, f.responder.ID, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationHelpfulMark, feed[0].Type)
}

func TestHelpfulMarkOnOwnResponseSkipsNotification(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.asker.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "self answer",
	})
	require.NoError(t, err)

	helpful := true
	updated, err := f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{IsHelpful: &helpful})
	require.NoError(t, err)
	assert.True(t, updated.IsHelpful)

	feed, err := f.notifications.ListForRecipient(ctx, f.asker.ID, false)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestHelpfulUnmarkNeverNotifies(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "answer",
	})
	require.NoError(t, err)

	helpful := true
	_, err = f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{IsHelpful: &helpful})
	require.NoError(t, err)

	notHelpful := false
	updated, err := f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{IsHelpful: &notHelpful})
	require.NoError(t, err)
	assert.False(t, updated.IsHelpful)

	// The original mark produced one notification; the unmark adds nothing.
	feed, err := f.notifications.ListForRecipient(ctx, f.responder.ID, false)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestHelpfulRemarkNotifiesAgainOnlyOnTransition(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "answer",
	})
	require.NoError(t, err)

	helpful := true
	_, err = f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{IsHelpful: &helpful})
	require.NoError(t, err)

	// Marking an already-helpful response again is not a transition.
	_, err = f.service.UpdateResponse(ctx, created.ID, f.asker.ID, &dto.UpdateResponseRequest{IsHelpful: &helpful})
	require.NoError(t, err)

	feed, err := f.notifications.ListForRecipient(ctx, f.responder.ID, false)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestUpdateResponseEmptyPayload(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "answer",
	})
	require.NoError(t, err)

	_, err = f.service.UpdateResponse(ctx, created.ID, f.responder.ID, &dto.UpdateResponseRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDeleteResponseOwnership(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "answer",
	})
	require.NoError(t, err)

	_, err = f.service.DeleteResponse(ctx, created.ID, f.asker.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	result, err := f.service.DeleteResponse(ctx, created.ID, f.responder.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)

	_, err = f.service.GetResponse(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResponseNotFound)
}

func TestListResponsesSortAndAnonymousMasking(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID: f.question.ID,
		Content:    "first",
	})
	require.NoError(t, err)

	second, err := f.service.CreateResponse(ctx, f.responder.ID, &dto.CreateResponseRequest{
		QuestionID:  f.question.ID,
		Content:     "second",
		IsAnonymous: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousPosterName, second.PosterName)

	newest, err := f.service.ListForQuestion(ctx, f.question.ID, "newest")
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, second.ID, newest[0].ID)

	oldest, err := f.service.ListForQuestion(ctx, f.question.ID, "oldest")
	require.NoError(t, err)
	assert.Equal(t, first.ID, oldest[0].ID)

	// Unknown sort falls back to newest.
	fallback, err := f.service.ListForQuestion(ctx, f.question.ID, "sideways")
	require.NoError(t, err)
	assert.Equal(t, second.ID, fallback[0].ID)
}
