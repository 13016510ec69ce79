package model

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/tui/client"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"go.uber.org/zap"
)

// Options configures a ViewModel.
type Options struct {
	// Dispatch runs f on the UI goroutine. Nil runs f inline.
	Dispatch func(f func())

	// RefreshInterval coalesces roster change notifications before a reload.
	RefreshInterval time.Duration
	Clock           clockwork.Clock
	Logger          *zap.Logger
}

// ViewModel caches daemon state for the screens and keeps the rosters fresh.
type ViewModel struct {
	mu sync.RWMutex

	client   *client.Client
	dispatch func(func())
	logger   *zap.Logger
	refresh  *compose.Debouncer
	status   *rpc.SessionStatus

	// All holds every conversation for the home screen.
	All *compose.Roster
	// Direct holds direct conversations only; it feeds New Message and
	// Select Users.
	Direct *compose.Roster
	Flash  *ui.FlashModel
}

// NewViewModel creates a new view model connected to the daemon client.
func NewViewModel(c *client.Client, opts Options) *ViewModel {
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewModel{
		client:   c,
		dispatch: dispatch,
		logger:   logger.Named("model"),
		refresh:  compose.NewDebouncer(opts.RefreshInterval, opts.Clock),
		All:      compose.NewRoster(),
		Direct:   compose.NewRoster(),
		Flash:    ui.NewFlashModel(opts.Clock),
	}
}

// LoadSessionStatus fetches current session status.
func (vm *ViewModel) LoadSessionStatus(ctx context.Context) error {
	resp, err := vm.client.Session.GetSessionStatus(ctx, &rpc.Empty{})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.status = resp
	vm.mu.Unlock()
	return nil
}

// SessionStatus returns the last fetched status, or nil before the first load.
func (vm *ViewModel) SessionStatus() *rpc.SessionStatus {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.status
}

// LoadRoster fetches both rosters and replaces them on the UI goroutine.
func (vm *ViewModel) LoadRoster(ctx context.Context) error {
	all, err := vm.client.Roster.ListRoster(ctx, &rpc.ListRosterRequest{})
	if err != nil {
		return err
	}
	direct, err := vm.client.Roster.ListRoster(ctx, &rpc.ListRosterRequest{Kind: rpc.KindDirect})
	if err != nil {
		return err
	}

	allEntries := toEntries(all.Entries)
	directEntries := toEntries(direct.Entries)
	vm.dispatch(func() {
		vm.All.Set(allEntries)
		vm.Direct.Set(directEntries)
	})
	return nil
}

func toEntries(rows []rpc.RosterEntry) []compose.Entry {
	out := make([]compose.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, client.RosterEntry(r))
	}
	return out
}

// WatchRoster reloads the rosters whenever the daemon reports a change,
// coalescing bursts. It returns when ctx is done or the stream ends.
func (vm *ViewModel) WatchRoster(ctx context.Context) error {
	stream, err := vm.client.Roster.WatchRoster(ctx, &rpc.Empty{})
	if err != nil {
		return err
	}
	for {
		evt, err := stream.Recv()
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
		vm.logger.Debug("roster changed", zap.String("reason", evt.Reason), zap.Int("jids", len(evt.JIDs)))
		vm.refresh.Trigger(func() {
			if err := vm.LoadRoster(ctx); err != nil && ctx.Err() == nil {
				vm.logger.Warn("roster reload failed", zap.Error(err))
			}
		})
	}
}

// StartDirect opens (or reuses) a direct conversation with handle and
// returns its JID.
func (vm *ViewModel) StartDirect(ctx context.Context, handle string) (string, error) {
	resp, err := vm.client.Room.StartDirect(ctx, &rpc.StartDirectRequest{JID: handle})
	if err != nil {
		return "", err
	}
	return resp.JID, nil
}

// CreateGroup creates a group with users and returns its JID.
func (vm *ViewModel) CreateGroup(ctx context.Context, name string, users []compose.User) (string, error) {
	handles := make([]string, 0, len(users))
	for _, u := range users {
		handles = append(handles, u.Handle)
	}
	resp, err := vm.client.Room.CreateGroup(ctx, &rpc.CreateGroupRequest{Name: name, Users: handles})
	if err != nil {
		return "", err
	}
	return resp.JID, nil
}

// Searcher returns the directory searcher used by the list screens.
func (vm *ViewModel) Searcher(limit int) compose.Searcher {
	return vm.client.Searcher(limit)
}

// Adder returns the room adder used by Select Users.
func (vm *ViewModel) Adder() compose.RoomAdder {
	return vm.client
}

// Close stops any pending roster reload.
func (vm *ViewModel) Close() {
	vm.refresh.Stop()
}
