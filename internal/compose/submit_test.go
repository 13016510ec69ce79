package compose

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAdder struct {
	err     error
	block   chan struct{}
	entered chan struct{}
	room    string
	users   []User
}

func (f *fakeAdder) AddUsersToRoom(ctx context.Context, roomID string, users []User) error {
	f.room, f.users = roomID, users
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func TestSubmitFailureClearsFlag(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	adder := &fakeAdder{err: errors.New("not an admin")}

	var states []SubmitState
	s := NewSubmitter(adder, zap.New(core), func(st SubmitState) { states = append(states, st) })

	if ok := s.Submit(context.Background(), "team@g", []User{{Handle: "a@s"}}); ok {
		t.Error("Submit() = true, want false")
	}
	if s.Loading() {
		t.Error("Loading() = true after failure")
	}
	if len(states) != 2 || states[0] != Submitting || states[1] != Idle {
		t.Errorf("states = %v, want [SUBMITTING IDLE]", states)
	}
	logged := logs.FilterMessage("add users to room failed").All()
	if len(logged) != 1 {
		t.Fatalf("logged %d failures, want 1", len(logged))
	}
	if logged[0].ContextMap()["room"] != "team@g" {
		t.Errorf("room field = %v, want team@g", logged[0].ContextMap()["room"])
	}
}

func TestSubmitSuccess(t *testing.T) {
	adder := &fakeAdder{}
	s := NewSubmitter(adder, nil, nil)

	users := []User{{Handle: "a@s"}, {Handle: "b@s"}}
	if !s.Submit(context.Background(), "team@g", users) {
		t.Fatal("Submit() = false, want true")
	}
	if adder.room != "team@g" || len(adder.users) != 2 {
		t.Errorf("adder got room=%q users=%v", adder.room, adder.users)
	}
	if s.State() != Idle {
		t.Errorf("State() = %s, want IDLE", s.State())
	}
}

func TestSubmitWhileSubmittingIgnored(t *testing.T) {
	adder := &fakeAdder{block: make(chan struct{}), entered: make(chan struct{})}
	s := NewSubmitter(adder, nil, nil)

	done := make(chan bool)
	go func() { done <- s.Submit(context.Background(), "team@g", nil) }()

	select {
	case <-adder.entered:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for first submit")
	}
	if !s.Loading() {
		t.Error("Loading() = false during submit")
	}
	if s.Submit(context.Background(), "team@g", nil) {
		t.Error("concurrent Submit() = true, want false")
	}

	close(adder.block)
	if !<-done {
		t.Error("first Submit() = false, want true")
	}
	if s.Loading() {
		t.Error("Loading() = true after submit")
	}
}

func TestNextActionString(t *testing.T) {
	if CreateChannel.String() != "create_channel" || AddToRoom.String() != "add_to_room" {
		t.Errorf("got %s / %s", CreateChannel, AddToRoom)
	}
	if NextAction(9).String() != "NextAction(9)" {
		t.Errorf("got %s", NextAction(9))
	}
}
