package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SessionService_GetSessionStatus_FullMethodName = "/wpnew.v1.SessionService/GetSessionStatus"
	SessionService_StartAuth_FullMethodName        = "/wpnew.v1.SessionService/StartAuth"
	SessionService_ListSessions_FullMethodName     = "/wpnew.v1.SessionService/ListSessions"
)

// SessionServiceServer reports daemon state and runs device pairing.
type SessionServiceServer interface {
	GetSessionStatus(context.Context, *Empty) (*SessionStatus, error)
	StartAuth(*Empty, grpc.ServerStreamingServer[AuthEvent]) error
	ListSessions(context.Context, *Empty) (*ListSessionsResponse, error)
}

// UnimplementedSessionServiceServer can be embedded for forward compatibility.
type UnimplementedSessionServiceServer struct{}

func (UnimplementedSessionServiceServer) GetSessionStatus(context.Context, *Empty) (*SessionStatus, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSessionStatus not implemented")
}

func (UnimplementedSessionServiceServer) StartAuth(*Empty, grpc.ServerStreamingServer[AuthEvent]) error {
	return status.Error(codes.Unimplemented, "method StartAuth not implemented")
}

func (UnimplementedSessionServiceServer) ListSessions(context.Context, *Empty) (*ListSessionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSessions not implemented")
}

// SessionService_ServiceDesc is the grpc.ServiceDesc for SessionService.
var SessionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "wpnew.v1.SessionService",
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSessionStatus",
			Handler: unaryHandler(SessionService_GetSessionStatus_FullMethodName, func(srv any, ctx context.Context, req *Empty) (*SessionStatus, error) {
				return srv.(SessionServiceServer).GetSessionStatus(ctx, req)
			}),
		},
		{
			MethodName: "ListSessions",
			Handler: unaryHandler(SessionService_ListSessions_FullMethodName, func(srv any, ctx context.Context, req *Empty) (*ListSessionsResponse, error) {
				return srv.(SessionServiceServer).ListSessions(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName: "StartAuth",
			Handler: serverStreamHandler(func(srv any, req *Empty, stream grpc.ServerStreamingServer[AuthEvent]) error {
				return srv.(SessionServiceServer).StartAuth(req, stream)
			}),
			ServerStreams: true,
		},
	},
}

// RegisterSessionServiceServer registers srv on s.
func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionService_ServiceDesc, srv)
}

// SessionServiceClient is the client API for SessionService.
type SessionServiceClient interface {
	GetSessionStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SessionStatus, error)
	StartAuth(ctx context.Context, in *Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[AuthEvent], error)
	ListSessions(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSessionsResponse, error)
}

type sessionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionServiceClient(cc grpc.ClientConnInterface) SessionServiceClient {
	return &sessionServiceClient{cc}
}

func (c *sessionServiceClient) GetSessionStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SessionStatus, error) {
	return invoke[SessionStatus](ctx, c.cc, SessionService_GetSessionStatus_FullMethodName, in, opts)
}

func (c *sessionServiceClient) StartAuth(ctx context.Context, in *Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[AuthEvent], error) {
	return openServerStream[Empty, AuthEvent](ctx, c.cc, &SessionService_ServiceDesc.Streams[0], SessionService_StartAuth_FullMethodName, in, opts)
}

func (c *sessionServiceClient) ListSessions(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSessionsResponse, error) {
	return invoke[ListSessionsResponse](ctx, c.cc, SessionService_ListSessions_FullMethodName, in, opts)
}
