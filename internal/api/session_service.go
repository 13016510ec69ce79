package api

import (
	"context"
	"time"

	"github.com/matheus3301/wpnew/internal/bus"
	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/session"
	"github.com/matheus3301/wpnew/internal/status"
	"github.com/matheus3301/wpnew/internal/store"
	"github.com/matheus3301/wpnew/internal/wa"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// Pairer is the part of the WhatsApp adapter the session service needs.
type Pairer interface {
	IsLoggedIn() bool
	PhoneNumber() string
	StartQRAuth(ctx context.Context, b *bus.Bus) (<-chan wa.AuthEvent, error)
}

// SessionService implements the SessionService gRPC service.
type SessionService struct {
	rpc.UnimplementedSessionServiceServer

	sessionName string
	startedAt   time.Time
	machine     *status.Machine
	adapter     Pairer
	bus         *bus.Bus
	db          *store.DB
	logger      *zap.Logger
}

// NewSessionService creates a new session service. adapter and db may be nil.
func NewSessionService(sessionName string, machine *status.Machine, adapter Pairer, b *bus.Bus, db *store.DB, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessionName: sessionName,
		startedAt:   time.Now(),
		machine:     machine,
		adapter:     adapter,
		bus:         b,
		db:          db,
		logger:      logger,
	}
}

func (s *SessionService) GetSessionStatus(_ context.Context, _ *rpc.Empty) (*rpc.SessionStatus, error) {
	current := s.machine.Current()

	resp := &rpc.SessionStatus{
		Session:     s.sessionName,
		State:       string(current),
		Description: current.Describe(),
		UptimeMs:    time.Since(s.startedAt).Milliseconds(),
	}
	if s.adapter != nil {
		resp.PhoneNumber = s.adapter.PhoneNumber()
	}
	if s.db != nil {
		counts, err := s.db.RosterCount()
		if err != nil {
			s.logger.Warn("roster count failed", zap.Error(err))
		} else {
			resp.DirectCount = counts[store.KindDirect]
			resp.GroupCount = counts[store.KindGroup]
		}
	}
	return resp, nil
}

func (s *SessionService) StartAuth(_ *rpc.Empty, stream grpc.ServerStreamingServer[rpc.AuthEvent]) error {
	if s.adapter == nil {
		return grpcstatus.Errorf(codes.Unavailable, "adapter not initialized")
	}
	if s.adapter.IsLoggedIn() {
		return grpcstatus.Errorf(codes.FailedPrecondition, "session %q is already linked", s.sessionName)
	}

	authCh, err := s.adapter.StartQRAuth(stream.Context(), s.bus)
	if err != nil {
		return grpcstatus.Errorf(codes.Internal, "start auth: %v", err)
	}

	for evt := range authCh {
		if err := stream.Send(&rpc.AuthEvent{
			Type:    string(evt.Type),
			QRCode:  evt.QRCode,
			Message: evt.Message,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionService) ListSessions(_ context.Context, _ *rpc.Empty) (*rpc.ListSessionsResponse, error) {
	infos, err := session.List()
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "list sessions: %v", err)
	}
	resp := &rpc.ListSessionsResponse{Sessions: make([]rpc.SessionInfo, 0, len(infos))}
	for _, info := range infos {
		resp.Sessions = append(resp.Sessions, rpc.SessionInfo{
			Name:          info.Name,
			Path:          info.Path,
			DaemonRunning: info.DaemonRunning,
		})
	}
	return resp, nil
}
