package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuestionSort(t *testing.T) {
	assert.Equal(t, QuestionSortNewest, NormalizeQuestionSort("newest"))
	assert.Equal(t, QuestionSortOldest, NormalizeQuestionSort("oldest"))
	assert.Equal(t, QuestionSortAnswered, NormalizeQuestionSort("answered"))
	assert.Equal(t, QuestionSortUnanswered, NormalizeQuestionSort("unanswered"))

	assert.Equal(t, QuestionSortNewest, NormalizeQuestionSort(""))
	assert.Equal(t, QuestionSortNewest, NormalizeQuestionSort("popular"))
	assert.Equal(t, QuestionSortNewest, NormalizeQuestionSort("OLDEST"))
}

func TestNormalizeResponseSort(t *testing.T) {
	assert.Equal(t, ResponseSortNewest, NormalizeResponseSort("newest"))
	assert.Equal(t, ResponseSortOldest, NormalizeResponseSort("oldest"))
	assert.Equal(t, ResponseSortNewest, NormalizeResponseSort(""))
	assert.Equal(t, ResponseSortNewest, NormalizeResponseSort("helpful"))
}

func TestNotificationTypeValid(t *testing.T) {
	assert.True(t, NotificationNewResponse.Valid())
	assert.True(t, NotificationHelpfulMark.Valid())
	assert.False(t, NotificationType("mention").Valid())
	assert.False(t, NotificationType("").Valid())
}
