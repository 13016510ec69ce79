package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/matheus3301/wpnew/internal/ingest"
	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/store"
	"github.com/matheus3301/wpnew/internal/wa"
	"go.mau.fi/whatsmeow/types"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// GroupManager creates groups and adds members.
type GroupManager interface {
	CreateGroup(ctx context.Context, name string, members []string) (string, error)
	AddParticipants(ctx context.Context, group string, members []string) error
}

// Recorder writes roster changes and notifies watchers.
type Recorder interface {
	IngestActivity(a ingest.Activity) error
	IngestGroup(g ingest.GroupJoined) error
}

// RoomService implements the RoomService gRPC service.
type RoomService struct {
	rpc.UnimplementedRoomServiceServer

	groups   GroupManager
	recorder Recorder
	logger   *zap.Logger
}

// NewRoomService creates a new room service. groups may be nil, in which case
// group calls fail with Unavailable.
func NewRoomService(groups GroupManager, recorder Recorder, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{groups: groups, recorder: recorder, logger: logger}
}

func (s *RoomService) AddUsersToRoom(ctx context.Context, req *rpc.AddUsersRequest) (*rpc.AddUsersResponse, error) {
	if req.RoomID == "" {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "room_id is required")
	}
	if len(req.Users) == 0 {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "users must not be empty")
	}
	if s.groups == nil {
		return nil, grpcstatus.Errorf(codes.Unavailable, "adapter not initialized")
	}

	if err := s.groups.AddParticipants(ctx, req.RoomID, req.Users); err != nil {
		s.logger.Warn("add participants failed", zap.String("room", req.RoomID), zap.Error(err))
		return nil, toStatus("add users", err)
	}
	s.record(ingest.Activity{ChatJID: req.RoomID, Kind: store.KindGroup, At: time.Now().UnixMilli()})
	return &rpc.AddUsersResponse{Added: len(req.Users)}, nil
}

func (s *RoomService) CreateGroup(ctx context.Context, req *rpc.CreateGroupRequest) (*rpc.CreateGroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "name is required")
	}
	if len(req.Users) == 0 {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "users must not be empty")
	}
	if s.groups == nil {
		return nil, grpcstatus.Errorf(codes.Unavailable, "adapter not initialized")
	}

	jid, err := s.groups.CreateGroup(ctx, name, req.Users)
	if err != nil {
		s.logger.Warn("create group failed", zap.String("name", name), zap.Error(err))
		return nil, toStatus("create group", err)
	}
	if err := s.recorder.IngestGroup(ingest.GroupJoined{JID: jid, Name: name, At: time.Now().UnixMilli()}); err != nil {
		s.logger.Warn("record new group failed", zap.String("jid", jid), zap.Error(err))
	}
	return &rpc.CreateGroupResponse{JID: jid}, nil
}

func (s *RoomService) StartDirect(_ context.Context, req *rpc.StartDirectRequest) (*rpc.StartDirectResponse, error) {
	jid, err := wa.ParseJID(req.JID)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	if jid.Server != types.DefaultUserServer {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%s is not a user", jid)
	}

	if err := s.recorder.IngestActivity(ingest.Activity{
		ChatJID: jid.String(),
		Kind:    store.KindDirect,
		At:      time.Now().UnixMilli(),
	}); err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "start direct: %v", err)
	}
	return &rpc.StartDirectResponse{JID: jid.String()}, nil
}

func (s *RoomService) record(a ingest.Activity) {
	if err := s.recorder.IngestActivity(a); err != nil {
		s.logger.Warn("record activity failed", zap.String("jid", a.ChatJID), zap.Error(err))
	}
}

func toStatus(op string, err error) error {
	switch {
	case errors.Is(err, wa.ErrNotLoggedIn):
		return grpcstatus.Errorf(codes.FailedPrecondition, "%s: %v", op, err)
	case errors.Is(err, context.Canceled):
		return grpcstatus.Errorf(codes.Canceled, "%s: %v", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return grpcstatus.Errorf(codes.DeadlineExceeded, "%s: %v", op, err)
	default:
		return grpcstatus.Errorf(codes.Internal, "%s: %v", op, err)
	}
}
