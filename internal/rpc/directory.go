package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DirectoryService_Search_FullMethodName = "/wpnew.v1.DirectoryService/Search"

// DirectoryServiceServer answers search-as-you-type queries.
type DirectoryServiceServer interface {
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
}

// UnimplementedDirectoryServiceServer can be embedded for forward compatibility.
type UnimplementedDirectoryServiceServer struct{}

func (UnimplementedDirectoryServiceServer) Search(context.Context, *SearchRequest) (*SearchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Search not implemented")
}

// DirectoryService_ServiceDesc is the grpc.ServiceDesc for DirectoryService.
var DirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "wpnew.v1.DirectoryService",
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Search",
			Handler: unaryHandler(DirectoryService_Search_FullMethodName, func(srv any, ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
				return srv.(DirectoryServiceServer).Search(ctx, req)
			}),
		},
	},
}

// RegisterDirectoryServiceServer registers srv on s.
func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&DirectoryService_ServiceDesc, srv)
}

// DirectoryServiceClient is the client API for DirectoryService.
type DirectoryServiceClient interface {
	Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error)
}

type directoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryServiceClient(cc grpc.ClientConnInterface) DirectoryServiceClient {
	return &directoryServiceClient{cc}
}

func (c *directoryServiceClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	return invoke[SearchResponse](ctx, c.cc, DirectoryService_Search_FullMethodName, in, opts)
}
