package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/config"
	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/tui/client"
	"github.com/matheus3301/wpnew/internal/tui/keys"
	"github.com/matheus3301/wpnew/internal/tui/model"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/matheus3301/wpnew/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	promptHeight   = 3
	menuRows       = 6
	statusInterval = 5 * time.Second
	stateAuth      = "AUTH_REQUIRED"
)

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	layout   *tview.Flex
	pages    *ui.Pages
	prompt   *ui.Prompt
	menu     *ui.Menu
	crumbs   *ui.Crumbs
	flashBar *ui.FlashBar
	info     *ui.SessionInfo

	vm       *model.ViewModel
	client   *client.Client
	registry *keys.Registry
	screens  *Screens
	homeView *views.HomeView
	help     *views.HelpView
	auth     *views.AuthView
	shown    map[string]screen

	session string
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, cfg *config.Config, sessionName string, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:      tview.NewApplication(),
		theme:    theme,
		pages:    ui.NewPages(),
		prompt:   ui.NewPrompt(theme),
		menu:     ui.NewMenu(theme, menuRows),
		crumbs:   ui.NewCrumbs(theme),
		flashBar: ui.NewFlashBar(theme),
		info:     ui.NewSessionInfo(theme),
		client:   c,
		registry: keys.NewRegistry(),
		shown:    make(map[string]screen),
		session:  sessionName,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	a.vm = model.NewViewModel(c, model.Options{
		Dispatch:        a.dispatch,
		RefreshInterval: cfg.Roster.RefreshInterval.Duration,
		Logger:          logger,
	})
	a.screens = NewScreens(ctx, a.vm, cfg, theme, a.dispatch, a.focus, a, logger)
	a.homeView = views.NewHomeView(theme, a.vm.All)
	a.help = views.NewHelpView(theme, CommandHelp())
	a.auth = views.NewAuthView(theme)

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	return a
}

func (a *App) dispatch(f func()) {
	a.app.QueueUpdateDraw(f)
}

func (a *App) focus(p tview.Primitive) {
	a.app.SetFocus(p)
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Key: tcell.KeyRune, Rune: 'q',
		Handler: a.Stop,
	})
	a.registry.AddGlobal("command", &keys.Action{
		Key: tcell.KeyRune, Rune: ':',
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal("help", &keys.Action{
		Key: tcell.KeyRune, Rune: '?',
		Handler: func() { a.push(a.help) },
	})

	home := a.homeView.Name()
	a.registry.AddView(home, "new-message", &keys.Action{
		Key: tcell.KeyRune, Rune: 'n',
		Handler: a.screens.OpenNewMessage,
	})
	a.registry.AddView(home, "new-group", &keys.Action{
		Key: tcell.KeyRune, Rune: 'g',
		Handler: func() { a.screens.OpenSelectUsers(compose.CreateChannel, "") },
	})
	a.registry.AddView(home, "add-members", &keys.Action{
		Key: tcell.KeyRune, Rune: 'i',
		Handler: func() {
			if e, ok := a.homeView.Selected(); ok {
				a.screens.OpenSelectUsers(compose.AddToRoom, compose.Normalize(e).Handle)
			}
		},
		Enabled: func() bool {
			e, ok := a.homeView.Selected()
			return ok && e.Group
		},
	})
	a.registry.AddView(home, "filter", &keys.Action{
		Key: tcell.KeyRune, Rune: '/',
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
}

func (a *App) setupCallbacks() {
	a.homeView.SetOnOpen(func(e compose.Entry) {
		if e.Group {
			a.screens.OpenSelectUsers(compose.AddToRoom, compose.Normalize(e).Handle)
			return
		}
		a.screens.startDirect(compose.Normalize(e))
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			cmd, err := ParseCommand(text)
			if err != nil {
				a.vm.Flash.Warn(err.Error())
				return
			}
			a.runCommand(cmd)
		case ui.PromptFilter:
			a.homeView.SetFilter(text)
		}
	})
	a.prompt.SetOnFilter(a.homeView.SetFilter)
	a.prompt.SetOnCancel(a.hidePrompt)

	a.crumbs.SetLabeler(func(name string) string {
		if t, ok := a.shown[name].(ui.Titled); ok {
			return t.Title()
		}
		return name
	})

	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.refreshHints()
	})
}

func (a *App) setupLayout() {
	header := tview.NewFlex().
		AddItem(a.info, 0, 1, false).
		AddItem(a.menu, 0, 1, false).
		AddItem(ui.NewLogo(a.theme), 28, 0, false)

	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false)

	a.app.SetRoot(a.layout, true)
	a.app.SetInputCapture(a.handleKey)
	a.push(a.homeView)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}

	switch a.app.GetFocus().(type) {
	case *tview.InputField:
		// The prompt handles its own Esc.
		if event.Key() == tcell.KeyEscape && a.app.GetFocus() != a.prompt.InputField {
			a.back()
			return nil
		}
		return event
	case *tview.Button:
		if event.Key() == tcell.KeyRune {
			return event
		}
	}

	if event.Key() == tcell.KeyEscape {
		a.back()
		return nil
	}
	if a.registry.HandleEvent(a.pages.Current(), event) {
		return nil
	}
	return event
}

func (a *App) runCommand(cmd Command) {
	a.logger.Debug("command", zap.String("name", cmd.Name), zap.String("args", cmd.Args))
	switch cmd.Name {
	case "new":
		if cmd.Args == "" {
			a.screens.OpenNewMessage()
			return
		}
		a.screens.OpenSearch(cmd.Args)
	case "search":
		a.screens.OpenSearch(cmd.Args)
	case "filter":
		a.home()
		a.homeView.SetFilter(cmd.Args)
	case "group":
		a.screens.OpenSelectUsers(compose.CreateChannel, "")
	case "add":
		a.screens.OpenSelectUsers(compose.AddToRoom, groupJID(cmd.Args))
	case "home":
		a.home()
	case "help":
		a.push(a.help)
	case "quit":
		a.Stop()
	}
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.layout.ResizeItem(a.prompt, promptHeight, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.layout.ResizeItem(a.prompt, 0, 0)
	if s, ok := a.shown[a.pages.Current()]; ok {
		a.app.SetFocus(s)
	}
}

// push stops the current screen and starts s on top of it. Only the top
// screen is live.
func (a *App) push(s screen) {
	if cur, ok := a.shown[a.pages.Current()]; ok {
		if cur.Name() == s.Name() {
			return
		}
		cur.Stop()
	}
	name := s.Name()
	if _, ok := a.shown[name]; !ok {
		s.Init()
		a.pages.AddPage(name, s, true, false)
		a.shown[name] = s
	}
	a.pages.Push(name)
	a.app.SetFocus(s)
	s.Start()
	a.refreshHints()
}

// back pops the current screen. On the home screen it clears the filter.
func (a *App) back() {
	if a.pages.Depth() <= 1 {
		a.homeView.ClearFilter()
		return
	}
	if s, ok := a.shown[a.pages.Current()]; ok {
		s.Stop()
	}
	a.pages.Pop()
	if s, ok := a.shown[a.pages.Current()]; ok {
		a.app.SetFocus(s)
		s.Start()
	}
	a.refreshHints()
}

// home drops every screen above the conversation list.
func (a *App) home() {
	if a.pages.Current() == a.homeView.Name() && a.pages.Depth() == 1 {
		return
	}
	if s, ok := a.shown[a.pages.Current()]; ok {
		s.Stop()
	}
	a.pages.Reset(a.homeView.Name())
	a.app.SetFocus(a.homeView)
	a.homeView.Start()
	a.refreshHints()
}

func (a *App) refreshHints() {
	if s, ok := a.shown[a.pages.Current()]; ok {
		a.menu.Update(s.Hints())
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	go a.bootstrap()
	go a.watchFlash()
	go a.statusLoop()
	return a.app.Run()
}

func (a *App) bootstrap() {
	if err := a.vm.LoadSessionStatus(a.ctx); err != nil {
		a.logger.Warn("load session status failed", zap.Error(err))
		a.vm.Flash.Err(err)
	}
	a.dispatch(a.updateInfo)

	if st := a.vm.SessionStatus(); st != nil && st.State == stateAuth {
		a.dispatch(func() { a.push(a.auth) })
		a.runAuthFlow()
		return
	}
	a.startRoster()
}

func (a *App) startRoster() {
	if err := a.vm.LoadRoster(a.ctx); err != nil {
		a.logger.Warn("load roster failed", zap.Error(err))
		a.vm.Flash.Err(err)
	}
	go func() {
		if err := a.vm.WatchRoster(a.ctx); err != nil && a.ctx.Err() == nil {
			a.logger.Warn("roster watch ended", zap.Error(err))
			a.vm.Flash.Warn("live roster updates stopped")
		}
	}()
}

// runAuthFlow streams pairing events from the daemon into the auth view.
func (a *App) runAuthFlow() {
	stream, err := a.client.Session.StartAuth(a.ctx, &rpc.Empty{})
	if err != nil {
		a.logger.Warn("start auth failed", zap.Error(err))
		a.dispatch(func() { a.auth.ShowMessage("Auth error: " + err.Error()) })
		return
	}

	for {
		evt, err := stream.Recv()
		if errors.Is(err, io.EOF) || a.ctx.Err() != nil {
			return
		}
		if err != nil {
			a.logger.Warn("auth stream failed", zap.Error(err))
			a.dispatch(func() { a.auth.ShowMessage("Auth stream error: " + err.Error()) })
			return
		}

		result := make(chan bool, 1)
		a.dispatch(func() {
			done, ok := a.auth.ShowEvent(evt)
			if done && ok {
				a.home()
			}
			result <- done && ok
		})
		if evt.Type != "qr_code" {
			if <-result {
				a.logger.Info("device linked")
				_ = a.vm.LoadSessionStatus(a.ctx)
				a.dispatch(a.updateInfo)
				a.startRoster()
			}
			return
		}
	}
}

func (a *App) watchFlash() {
	for {
		select {
		case msg := <-a.vm.Flash.Watch():
			a.dispatch(func() { a.flashBar.Update(&msg) })
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) statusLoop() {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := a.vm.LoadSessionStatus(a.ctx); err != nil && a.ctx.Err() == nil {
				a.logger.Debug("status refresh failed", zap.Error(err))
			}
			a.dispatch(func() {
				a.updateInfo()
				a.flashBar.Update(a.vm.Flash.GetMessage())
			})
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) updateInfo() {
	data := &ui.SessionData{Session: a.session, Status: "UNKNOWN"}
	if st := a.vm.SessionStatus(); st != nil {
		data.Phone = st.PhoneNumber
		data.Status = st.State
		data.Direct = st.DirectCount
		data.Groups = st.GroupCount
		data.Uptime = time.Duration(st.UptimeMs) * time.Millisecond
	}
	a.info.Update(data)
}

// Stop tears down the current screen and exits the application.
func (a *App) Stop() {
	if s, ok := a.shown[a.pages.Current()]; ok {
		s.Stop()
	}
	a.cancel()
	a.vm.Close()
	a.app.Stop()
}
