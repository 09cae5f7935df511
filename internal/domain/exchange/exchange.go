package exchange

import (
	"strings"
	"time"

	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of an exchange
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusAccepted   Status = "accepted"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
	StatusRejected   Status = "rejected"
)

// Errors returned by status transitions
var (
	ErrInvalidStatus     = shared.NewDomainError("INVALID_STATUS", "Unknown exchange status")
	ErrInvalidTransition = shared.NewDomainError("INVALID_TRANSITION", "Status transition is not allowed")
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAccepted, StatusCompleted, StatusCanceled, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCanceled, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusInProgress || target == StatusAccepted ||
			target == StatusCanceled || target == StatusRejected
	case StatusInProgress, StatusAccepted:
		return target == StatusCompleted || target == StatusCanceled
	case StatusCompleted, StatusCanceled, StatusRejected:
		return false // Terminal states
	}
	return false
}

// Exchange represents a proposed or in-progress exchange of one book between
// two users. It is the aggregate root of the transaction ledger.
//
// FromUserID, ToUserID and BookID are weak references fixed at creation;
// only Place and Status may change afterwards.
type Exchange struct {
	shared.BaseAggregateRoot
	Date       time.Time
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	BookID     uuid.UUID
	Place      string
	Status     Status
}

// NewExchange creates a new exchange proposal.
// The status defaults to pending; a caller may override it with any valid
// status (seed data and imports rely on this).
func NewExchange(fromUserID, toUserID, bookID uuid.UUID, place string, status Status) (*Exchange, error) {
	if fromUserID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_FIELD", "from_user_id is required")
	}
	if toUserID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_FIELD", "to_user_id is required")
	}
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_FIELD", "book_id is required")
	}
	if strings.TrimSpace(place) == "" {
		return nil, shared.NewDomainError("MISSING_FIELD", "place is required")
	}
	if fromUserID == toUserID {
		return nil, shared.NewDomainError("INVALID_PARTIES", "An exchange requires two distinct users")
	}
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Exchange{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              time.Now(),
		FromUserID:        fromUserID,
		ToUserID:          toUserID,
		BookID:            bookID,
		Place:             strings.TrimSpace(place),
		Status:            status,
	}, nil
}

// ChangeStatus advances the exchange along the lifecycle graph.
// Unknown statuses fail with ErrInvalidStatus, moves outside the transition
// table with ErrInvalidTransition.
func (e *Exchange) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if !e.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	e.Status = target
	e.UpdatedAt = time.Now()
	return nil
}

// ChangePlace updates the meeting place
func (e *Exchange) ChangePlace(place string) error {
	if strings.TrimSpace(place) == "" {
		return shared.NewDomainError("MISSING_FIELD", "place is required")
	}

	e.Place = strings.TrimSpace(place)
	e.UpdatedAt = time.Now()
	return nil
}

// InvolvesUser reports whether the user is one of the two parties
func (e *Exchange) InvolvesUser(userID uuid.UUID) bool {
	return e.FromUserID == userID || e.ToUserID == userID
}
