package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	RosterService_ListRoster_FullMethodName  = "/wpnew.v1.RosterService/ListRoster"
	RosterService_WatchRoster_FullMethodName = "/wpnew.v1.RosterService/WatchRoster"
)

// RosterServiceServer serves the local conversation list.
type RosterServiceServer interface {
	ListRoster(context.Context, *ListRosterRequest) (*ListRosterResponse, error)
	WatchRoster(*Empty, grpc.ServerStreamingServer[RosterEvent]) error
}

// UnimplementedRosterServiceServer can be embedded for forward compatibility.
type UnimplementedRosterServiceServer struct{}

func (UnimplementedRosterServiceServer) ListRoster(context.Context, *ListRosterRequest) (*ListRosterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRoster not implemented")
}

func (UnimplementedRosterServiceServer) WatchRoster(*Empty, grpc.ServerStreamingServer[RosterEvent]) error {
	return status.Error(codes.Unimplemented, "method WatchRoster not implemented")
}

// RosterService_ServiceDesc is the grpc.ServiceDesc for RosterService.
var RosterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "wpnew.v1.RosterService",
	HandlerType: (*RosterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListRoster",
			Handler: unaryHandler(RosterService_ListRoster_FullMethodName, func(srv any, ctx context.Context, req *ListRosterRequest) (*ListRosterResponse, error) {
				return srv.(RosterServiceServer).ListRoster(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName: "WatchRoster",
			Handler: serverStreamHandler(func(srv any, req *Empty, stream grpc.ServerStreamingServer[RosterEvent]) error {
				return srv.(RosterServiceServer).WatchRoster(req, stream)
			}),
			ServerStreams: true,
		},
	},
}

// RegisterRosterServiceServer registers srv on s.
func RegisterRosterServiceServer(s grpc.ServiceRegistrar, srv RosterServiceServer) {
	s.RegisterService(&RosterService_ServiceDesc, srv)
}

// RosterServiceClient is the client API for RosterService.
type RosterServiceClient interface {
	ListRoster(ctx context.Context, in *ListRosterRequest, opts ...grpc.CallOption) (*ListRosterResponse, error)
	WatchRoster(ctx context.Context, in *Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[RosterEvent], error)
}

type rosterServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRosterServiceClient(cc grpc.ClientConnInterface) RosterServiceClient {
	return &rosterServiceClient{cc}
}

func (c *rosterServiceClient) ListRoster(ctx context.Context, in *ListRosterRequest, opts ...grpc.CallOption) (*ListRosterResponse, error) {
	return invoke[ListRosterResponse](ctx, c.cc, RosterService_ListRoster_FullMethodName, in, opts)
}

func (c *rosterServiceClient) WatchRoster(ctx context.Context, in *Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[RosterEvent], error) {
	return openServerStream[Empty, RosterEvent](ctx, c.cc, &RosterService_ServiceDesc.Streams[0], RosterService_WatchRoster_FullMethodName, in, opts)
}
