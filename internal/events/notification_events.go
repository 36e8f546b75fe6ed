package events

import (
	"time"

	"github.com/google/uuid"
)

// NotificationTopic is the bus topic all notification events are published on.
const NotificationTopic = "cham-trac-nghiem.notifications"

// EventType represents the notification events emitted by the core services.
type EventType string

const (
	EventExamCreated        EventType = "exam.created"
	EventExamDeleted        EventType = "exam.deleted"
	EventSubmissionReceived EventType = "submission.received"
	EventSubmissionGraded   EventType = "submission.graded"
)

// NotificationEvent is the envelope published on the event bus. Data holds one
// of the payload structs below depending on Type.
type NotificationEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Data      interface{} `json:"data"`
}

// NewNotificationEvent builds an envelope with a fresh id and timestamp.
func NewNotificationEvent(eventType EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "cham-trac-nghiem-core",
		Data:      data,
	}
}

type ExamCreatedEvent struct {
	ExamID    string `json:"exam_id"`
	Title     string `json:"title"`
	CreatedBy string `json:"created_by"`
}

type ExamDeletedEvent struct {
	ExamID string `json:"exam_id"`
}

type SubmissionReceivedEvent struct {
	SubmissionID string `json:"submission_id"`
	ExamID       string `json:"exam_id"`
	StudentID    string `json:"student_id"`
}

type SubmissionGradedEvent struct {
	ResultID       string  `json:"result_id"`
	SubmissionID   string  `json:"submission_id"`
	ExamID         string  `json:"exam_id"`
	StudentID      string  `json:"student_id"`
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
}
