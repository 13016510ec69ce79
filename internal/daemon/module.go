package daemon

import (
	"context"

	"github.com/matheus3301/wpnew/internal/api"
	"github.com/matheus3301/wpnew/internal/bus"
	"github.com/matheus3301/wpnew/internal/config"
	"github.com/matheus3301/wpnew/internal/directory"
	"github.com/matheus3301/wpnew/internal/ingest"
	"github.com/matheus3301/wpnew/internal/lock"
	"github.com/matheus3301/wpnew/internal/logging"
	"github.com/matheus3301/wpnew/internal/session"
	"github.com/matheus3301/wpnew/internal/status"
	"github.com/matheus3301/wpnew/internal/store"
	"github.com/matheus3301/wpnew/internal/wa"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the resolved session configuration passed to the fx module.
type Params struct {
	SessionName string
	SocketPath  string // optional override for testing; empty = use default
	LogLevel    string // overrides config log.level when set
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideAdapter,
			provideIngestEngine,
			provideDirectory,
			provideSessionService,
			provideRosterService,
			provideDirectoryService,
			provideRoomService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

// FxLogger routes fx's own lifecycle messages through the daemon logger.
func FxLogger(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Named("fx")}
}

func provideConfig() *config.Config {
	return config.LoadOrDefault(session.ConfigPath())
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if p.LogLevel != "" {
		level = p.LogLevel
	}
	return logging.New(logging.Options{
		Path:    session.DaemonLogPath(p.SessionName),
		Session: p.SessionName,
		Level:   level,
		Stderr:  true,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.Dir(p.SessionName))
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired")
	return l, nil
}

// provideStore takes the lock as a parameter so the database is never opened
// by a second daemon.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := session.RosterDBPath(p.SessionName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideAdapter(p Params, _ *lock.Lock, logger *zap.Logger) (*wa.Adapter, error) {
	return wa.NewAdapter(context.Background(), p.SessionName, logger)
}

func provideIngestEngine(db *store.DB, b *bus.Bus, logger *zap.Logger) *ingest.Engine {
	return ingest.NewEngine(db, b, logger)
}

func provideDirectory(db *store.DB, logger *zap.Logger) *directory.Directory {
	return directory.New(db, logger)
}

func provideSessionService(p Params, m *status.Machine, adapter *wa.Adapter, b *bus.Bus, db *store.DB, logger *zap.Logger) *api.SessionService {
	return api.NewSessionService(p.SessionName, m, adapter, b, db, logger)
}

func provideRosterService(p Params, db *store.DB, b *bus.Bus) *api.RosterService {
	return api.NewRosterService(db, b, p.SessionName)
}

func provideDirectoryService(d *directory.Directory) *api.DirectoryService {
	return api.NewDirectoryService(d)
}

func provideRoomService(adapter *wa.Adapter, engine *ingest.Engine, logger *zap.Logger) *api.RoomService {
	return api.NewRoomService(adapter, engine, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, db *store.DB, adapter *wa.Adapter, engine *ingest.Engine, machine *status.Machine, b *bus.Bus, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Start ingest engine (subscribes to wa.* bus events).
			engine.Start(context.Background())

			handler := wa.NewEventHandler(b, machine, adapter, logger)
			adapter.RegisterEventHandler(handler.Handle)

			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			if adapter.IsLoggedIn() {
				_ = machine.Transition(status.Connecting)
				go func() {
					if err := adapter.Connect(); err != nil {
						logger.Error("auto-connect failed", zap.Error(err))
						_ = machine.Transition(status.Error)
					}
				}()
			} else {
				logger.Info("no credentials found, auth required")
				_ = machine.Transition(status.AuthRequired)
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			engine.Stop()
			adapter.Disconnect()
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
