// Package events publishes activity events emitted after exercise
// writes. Publishing is fire-and-forget: a failed publish is logged and
// never fails the originating request.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventTypeExerciseLogged is emitted after a successful exercise write.
const EventTypeExerciseLogged = "exercise.logged"

// Event is the envelope published for each activity.
type Event struct {
	ID         uuid.UUID `json:"event_id"`
	Type       string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Duration   int32     `json:"duration"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher is implemented by event sinks.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the log only. It is the default sink
// when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.Type).
		Str("user_id", event.UserID.String()).
		Str("exercise_id", event.ExerciseID.String()).
		Msg("publishing event")
	return nil
}
