package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	RoomService_AddUsersToRoom_FullMethodName = "/wpnew.v1.RoomService/AddUsersToRoom"
	RoomService_CreateGroup_FullMethodName    = "/wpnew.v1.RoomService/CreateGroup"
	RoomService_StartDirect_FullMethodName    = "/wpnew.v1.RoomService/StartDirect"
)

// RoomServiceServer creates and edits conversations.
type RoomServiceServer interface {
	AddUsersToRoom(context.Context, *AddUsersRequest) (*AddUsersResponse, error)
	CreateGroup(context.Context, *CreateGroupRequest) (*CreateGroupResponse, error)
	StartDirect(context.Context, *StartDirectRequest) (*StartDirectResponse, error)
}

// UnimplementedRoomServiceServer can be embedded for forward compatibility.
type UnimplementedRoomServiceServer struct{}

func (UnimplementedRoomServiceServer) AddUsersToRoom(context.Context, *AddUsersRequest) (*AddUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddUsersToRoom not implemented")
}

func (UnimplementedRoomServiceServer) CreateGroup(context.Context, *CreateGroupRequest) (*CreateGroupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateGroup not implemented")
}

func (UnimplementedRoomServiceServer) StartDirect(context.Context, *StartDirectRequest) (*StartDirectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartDirect not implemented")
}

// RoomService_ServiceDesc is the grpc.ServiceDesc for RoomService.
var RoomService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "wpnew.v1.RoomService",
	HandlerType: (*RoomServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddUsersToRoom",
			Handler: unaryHandler(RoomService_AddUsersToRoom_FullMethodName, func(srv any, ctx context.Context, req *AddUsersRequest) (*AddUsersResponse, error) {
				return srv.(RoomServiceServer).AddUsersToRoom(ctx, req)
			}),
		},
		{
			MethodName: "CreateGroup",
			Handler: unaryHandler(RoomService_CreateGroup_FullMethodName, func(srv any, ctx context.Context, req *CreateGroupRequest) (*CreateGroupResponse, error) {
				return srv.(RoomServiceServer).CreateGroup(ctx, req)
			}),
		},
		{
			MethodName: "StartDirect",
			Handler: unaryHandler(RoomService_StartDirect_FullMethodName, func(srv any, ctx context.Context, req *StartDirectRequest) (*StartDirectResponse, error) {
				return srv.(RoomServiceServer).StartDirect(ctx, req)
			}),
		},
	},
}

// RegisterRoomServiceServer registers srv on s.
func RegisterRoomServiceServer(s grpc.ServiceRegistrar, srv RoomServiceServer) {
	s.RegisterService(&RoomService_ServiceDesc, srv)
}

// RoomServiceClient is the client API for RoomService.
type RoomServiceClient interface {
	AddUsersToRoom(ctx context.Context, in *AddUsersRequest, opts ...grpc.CallOption) (*AddUsersResponse, error)
	CreateGroup(ctx context.Context, in *CreateGroupRequest, opts ...grpc.CallOption) (*CreateGroupResponse, error)
	StartDirect(ctx context.Context, in *StartDirectRequest, opts ...grpc.CallOption) (*StartDirectResponse, error)
}

type roomServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRoomServiceClient(cc grpc.ClientConnInterface) RoomServiceClient {
	return &roomServiceClient{cc}
}

func (c *roomServiceClient) AddUsersToRoom(ctx context.Context, in *AddUsersRequest, opts ...grpc.CallOption) (*AddUsersResponse, error) {
	return invoke[AddUsersResponse](ctx, c.cc, RoomService_AddUsersToRoom_FullMethodName, in, opts)
}

func (c *roomServiceClient) CreateGroup(ctx context.Context, in *CreateGroupRequest, opts ...grpc.CallOption) (*CreateGroupResponse, error) {
	return invoke[CreateGroupResponse](ctx, c.cc, RoomService_CreateGroup_FullMethodName, in, opts)
}

func (c *roomServiceClient) StartDirect(ctx context.Context, in *StartDirectRequest, opts ...grpc.CallOption) (*StartDirectResponse, error) {
	return invoke[StartDirectResponse](ctx, c.cc, RoomService_StartDirect_FullMethodName, in, opts)
}
