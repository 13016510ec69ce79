package tui

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/config"
	"github.com/matheus3301/wpnew/internal/tui/model"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/matheus3301/wpnew/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// screen is a navigable view.
type screen interface {
	ui.Component
	tview.Primitive
}

// navigator moves between screens. It is implemented by App.
type navigator interface {
	push(s screen)
	back()
	home()
	refreshHints()
}

// Screens builds the New Message, Select Users and Create Group screens on
// first use and keeps them for the life of the app.
type Screens struct {
	ctx    context.Context
	vm     *model.ViewModel
	deps   views.ListDeps
	nav    navigator
	logger *zap.Logger

	newMessage  *views.NewMessageView
	selectUsers *views.SelectUsersView
	createGroup *views.CreateGroupView
}

// NewScreens captures what the screens need. Nothing is built yet.
func NewScreens(ctx context.Context, vm *model.ViewModel, cfg *config.Config, theme *ui.Theme,
	dispatch func(func()), focus func(tview.Primitive), nav navigator, logger *zap.Logger,
) *Screens {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Screens{
		ctx: ctx,
		vm:  vm,
		deps: views.ListDeps{
			Theme:    theme,
			Searcher: vm.Searcher(cfg.Search.Limit),
			Quiet:    cfg.Search.QuietInterval.Duration,
			Refresh:  cfg.Roster.RefreshInterval.Duration,
			Clock:    clockwork.NewRealClock(),
			Dispatch: dispatch,
			Focus:    focus,
			Flash:    vm.Flash,
			Logger:   logger,
		},
		nav:    nav,
		logger: logger,
	}
}

// NewMessage returns the New Message screen.
func (s *Screens) NewMessage() *views.NewMessageView {
	if s.newMessage != nil {
		return s.newMessage
	}
	deps := s.deps
	deps.Roster = s.vm.Direct
	v := views.NewNewMessageView(deps)
	v.SetOnDirect(s.startDirect)
	v.SetOnCreateGroup(func() { s.OpenSelectUsers(compose.CreateChannel, "") })
	s.newMessage = v
	return v
}

// SelectUsers returns the Select Users screen.
func (s *Screens) SelectUsers() *views.SelectUsersView {
	if s.selectUsers != nil {
		return s.selectUsers
	}
	deps := s.deps
	deps.Roster = s.vm.Direct
	v := views.NewSelectUsersView(deps, s.vm.Adder())
	v.SetOnHintsChanged(s.nav.refreshHints)
	v.SetOnCreateChannel(func(users []compose.User) {
		cg := s.CreateGroup()
		cg.Prepare(users)
		s.nav.push(cg)
	})
	v.SetOnAdded(func(string, int) { s.nav.home() })
	s.selectUsers = v
	return v
}

// CreateGroup returns the Create Group screen.
func (s *Screens) CreateGroup() *views.CreateGroupView {
	if s.createGroup != nil {
		return s.createGroup
	}
	v := views.NewCreateGroupView(s.deps.Theme, s.vm.CreateGroup, s.deps.Dispatch, s.vm.Flash)
	v.SetOnCreated(func(jid, name string) {
		s.logger.Info("group created", zap.String("jid", jid), zap.String("name", name))
		s.nav.home()
	})
	v.SetOnCancel(s.nav.back)
	s.createGroup = v
	return v
}

// OpenNewMessage shows the New Message screen.
func (s *Screens) OpenNewMessage() {
	s.nav.push(s.NewMessage())
}

// OpenSearch shows New Message with query already searched for.
func (s *Screens) OpenSearch(query string) {
	v := s.NewMessage()
	v.Prefill(query)
	s.nav.push(v)
}

// OpenSelectUsers shows Select Users for action. roomID is the group for
// AddToRoom.
func (s *Screens) OpenSelectUsers(action compose.NextAction, roomID string) {
	v := s.SelectUsers()
	v.Prepare(action, roomID)
	s.nav.push(v)
}

func (s *Screens) startDirect(u compose.User) {
	go func() {
		jid, err := s.vm.StartDirect(s.ctx, u.Handle)
		s.deps.Dispatch(func() {
			if err != nil {
				if s.ctx.Err() == nil {
					s.vm.Flash.Err(err)
				}
				return
			}
			s.logger.Debug("direct started", zap.String("jid", jid))
			s.vm.Flash.Info("conversation with " + u.Label() + " is ready")
			s.nav.home()
		})
	}()
}
