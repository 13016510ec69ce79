package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/matheus3301/wpnew/internal/bus"
	"github.com/matheus3301/wpnew/internal/ingest"
	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// RosterService implements the RosterService gRPC service.
type RosterService struct {
	rpc.UnimplementedRosterServiceServer

	db          *store.DB
	bus         *bus.Bus
	sessionName string
}

// NewRosterService creates a new roster service backed by the store.
func NewRosterService(db *store.DB, b *bus.Bus, sessionName string) *RosterService {
	return &RosterService{db: db, bus: b, sessionName: sessionName}
}

func (s *RosterService) ListRoster(_ context.Context, req *rpc.ListRosterRequest) (*rpc.ListRosterResponse, error) {
	kind := store.Kind(req.Kind)
	if kind != "" && kind != store.KindDirect && kind != store.KindGroup {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "unknown kind %q", req.Kind)
	}
	if req.Limit < 0 {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "limit must not be negative")
	}

	subs, err := s.db.ListRoster(kind, req.Limit)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "list roster: %v", err)
	}

	resp := &rpc.ListRosterResponse{Entries: make([]rpc.RosterEntry, 0, len(subs))}
	for _, sub := range subs {
		resp.Entries = append(resp.Entries, rpc.RosterEntry{
			JID:           sub.JID,
			Kind:          string(sub.Kind),
			Name:          sub.Name,
			DisplayName:   sub.DisplayName,
			RoomUpdatedAt: sub.RoomUpdatedAt,
			UnreadCount:   sub.UnreadCount,
		})
	}
	return resp, nil
}

func (s *RosterService) WatchRoster(_ *rpc.Empty, stream grpc.ServerStreamingServer[rpc.RosterEvent]) error {
	ch, unsub := s.bus.Subscribe("roster.", 256)
	defer unsub()

	for {
		select {
		case evt := <-ch:
			out := &rpc.RosterEvent{
				EventID:          uuid.New().String(),
				Session:          s.sessionName,
				OccurredAtUnixMs: evt.Timestamp.UnixMilli(),
				Kind:             evt.Kind,
			}
			if rc, ok := evt.Payload.(ingest.RosterChange); ok {
				out.Reason = rc.Reason
				out.JIDs = rc.JIDs
			}
			if err := stream.Send(out); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return nil
		}
	}
}
