package api

import (
	"context"
	"errors"

	"github.com/matheus3301/wpnew/internal/directory"
	"github.com/matheus3301/wpnew/internal/rpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// Searcher ranks directory candidates.
type Searcher interface {
	Search(ctx context.Context, text string, includeRooms bool, limit int) ([]directory.Result, error)
}

// DirectoryService implements the DirectoryService gRPC service.
type DirectoryService struct {
	rpc.UnimplementedDirectoryServiceServer

	searcher Searcher
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(searcher Searcher) *DirectoryService {
	return &DirectoryService{searcher: searcher}
}

func (s *DirectoryService) Search(ctx context.Context, req *rpc.SearchRequest) (*rpc.SearchResponse, error) {
	if req.Limit < 0 {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "limit must not be negative")
	}

	results, err := s.searcher.Search(ctx, req.Text, req.FilterRooms, req.Limit)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, grpcstatus.Error(codes.Canceled, "search cancelled")
		}
		return nil, grpcstatus.Errorf(codes.Internal, "search: %v", err)
	}

	resp := &rpc.SearchResponse{Results: make([]rpc.SearchResult, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, rpc.SearchResult{
			ID:            r.JID,
			Username:      r.JID,
			Name:          r.DisplayName,
			Kind:          string(r.Kind),
			RoomUpdatedAt: r.RoomUpdatedAt,
			Score:         r.Score,
			Search:        true,
		})
	}
	return resp, nil
}
