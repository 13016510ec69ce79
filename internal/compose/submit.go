package compose

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// NextAction is what the confirm button of the Select Users screen does.
type NextAction int

const (
	// CreateChannel hands the selection to the Create Group screen.
	CreateChannel NextAction = iota
	// AddToRoom adds the selection to an existing group.
	AddToRoom
)

func (a NextAction) String() string {
	switch a {
	case CreateChannel:
		return "create_channel"
	case AddToRoom:
		return "add_to_room"
	default:
		return fmt.Sprintf("NextAction(%d)", int(a))
	}
}

// SubmitState is the loading flag of the Select Users screen.
type SubmitState string

const (
	Idle       SubmitState = "IDLE"
	Submitting SubmitState = "SUBMITTING"
)

var submitTransitions = map[SubmitState][]SubmitState{
	Idle:       {Submitting},
	Submitting: {Idle},
}

// RoomAdder adds users to an existing room.
type RoomAdder interface {
	AddUsersToRoom(ctx context.Context, roomID string, users []User) error
}

// Submitter runs the add-users call and owns the loading flag around it.
type Submitter struct {
	adder    RoomAdder
	logger   *zap.Logger
	onChange func(SubmitState)

	mu    sync.Mutex
	state SubmitState
}

// NewSubmitter creates an idle Submitter. onChange may be nil.
func NewSubmitter(adder RoomAdder, logger *zap.Logger, onChange func(SubmitState)) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		adder:    adder,
		logger:   logger.Named("submit"),
		onChange: onChange,
		state:    Idle,
	}
}

// State returns the current state.
func (s *Submitter) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether a submission is in progress.
func (s *Submitter) Loading() bool {
	return s.State() == Submitting
}

func (s *Submitter) transition(to SubmitState) error {
	s.mu.Lock()
	from := s.state
	if !slices.Contains(submitTransitions[from], to) {
		s.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	s.state = to
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(to)
	}
	return nil
}

// Submit adds users to roomID and reports whether it succeeded. Failures are
// logged, not returned. The flag is back to Idle when Submit returns. A
// Submit while another is running is ignored.
func (s *Submitter) Submit(ctx context.Context, roomID string, users []User) bool {
	if err := s.transition(Submitting); err != nil {
		s.logger.Debug("submit ignored", zap.Error(err))
		return false
	}
	defer func() { _ = s.transition(Idle) }()

	if err := s.adder.AddUsersToRoom(ctx, roomID, users); err != nil {
		s.logger.Warn("add users to room failed",
			zap.String("room", roomID),
			zap.Int("users", len(users)),
			zap.Error(err),
		)
		return false
	}
	s.logger.Info("users added to room", zap.String("room", roomID), zap.Int("users", len(users)))
	return true
}
