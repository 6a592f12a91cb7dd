// Package events publishes loan lifecycle events for downstream consumers
// such as notification workers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// Exchange is the topic exchange loan events are published to.
	Exchange = "creditsea.loans"

	LoanSubmitted = "loan.submitted"
	LoanReviewed  = "loan.reviewed"
)

// LoanEvent is the JSON body of every loan event
type LoanEvent struct {
	Type       string    `json:"type"`
	LoanID     uuid.UUID `json:"loanId"`
	UserID     uuid.UUID `json:"userId"`
	Status     string    `json:"status"`
	LoanAmount float64   `json:"loanAmount"`
	ActorID    uuid.UUID `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers loan events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event LoanEvent) error
	Close() error
}

type nopPublisher struct{}

// Nop returns a Publisher that drops every event.
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, LoanEvent) error { return nil }
func (nopPublisher) Close() error                             { return nil }
