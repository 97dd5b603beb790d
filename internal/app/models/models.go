package models

// NotificationType enumerates the activity events that fan out to recipients
type NotificationType string

const (
	// NotificationNewResponse is sent to a question's poster when someone else responds
	NotificationNewResponse NotificationType = "new_response"
	// NotificationHelpfulMark is sent to a response's poster when the question poster marks it helpful
	NotificationHelpfulMark NotificationType = "helpful_mark"
)

// Valid reports whether the notification type is one of the known values
func (t NotificationType) Valid() bool {
	return t == NotificationNewResponse || t == NotificationHelpfulMark
}

// QuestionSort enumerates question list orderings
type QuestionSort string

const (
	QuestionSortNewest     QuestionSort = "newest"
	QuestionSortOldest     QuestionSort = "oldest"
	QuestionSortAnswered   QuestionSort = "answered"
	QuestionSortUnanswered QuestionSort = "unanswered"
)

// NormalizeQuestionSort maps an arbitrary sort value to a known one.
// Unknown values fall back to newest.
func NormalizeQuestionSort(s string) QuestionSort {
	switch QuestionSort(s) {
	case QuestionSortOldest, QuestionSortAnswered, QuestionSortUnanswered:
		return QuestionSort(s)
	default:
		return QuestionSortNewest
	}
}

// ResponseSort enumerates response list orderings
type ResponseSort string

const (
	ResponseSortNewest ResponseSort = "newest"
	ResponseSortOldest ResponseSort = "oldest"
)

// NormalizeResponseSort maps an arbitrary sort value to a known one.
// Unknown values fall back to newest.
func NormalizeResponseSort(s string) ResponseSort {
	if ResponseSort(s) == ResponseSortOldest {
		return ResponseSortOldest
	}
	return ResponseSortNewest
}

// AnonymousPosterName masks the poster identity on anonymous questions and responses
const AnonymousPosterName = "Anonymous"
