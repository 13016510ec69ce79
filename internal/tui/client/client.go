package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/matheus3301/wpnew/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// RequestIDKey is the metadata key carrying a per-call id.
const RequestIDKey = "x-request-id"

// Client wraps gRPC connections to the daemon.
type Client struct {
	conn      *grpc.ClientConn
	Session   rpc.SessionServiceClient
	Roster    rpc.RosterServiceClient
	Directory rpc.DirectoryServiceClient
	Room      rpc.RoomServiceClient
}

// New dials the daemon's Unix domain socket and returns typed service clients.
func New(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient(
		"unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(withRequestID),
	)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}

	return &Client{
		conn:      conn,
		Session:   rpc.NewSessionServiceClient(conn),
		Roster:    rpc.NewRosterServiceClient(conn),
		Directory: rpc.NewDirectoryServiceClient(conn),
		Room:      rpc.NewRoomServiceClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Probe reports whether a daemon answers on socketPath within timeout.
func Probe(socketPath string, timeout time.Duration) bool {
	c, err := New(socketPath)
	if err != nil {
		return false
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err = c.Session.GetSessionStatus(ctx, &rpc.Empty{})
	return err == nil
}

func withRequestID(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	ctx = metadata.AppendToOutgoingContext(ctx, RequestIDKey, uuid.NewString())
	return invoker(ctx, method, req, reply, cc, opts...)
}

// Searcher queries the daemon directory on behalf of a compose.SearchController.
type Searcher struct {
	directory rpc.DirectoryServiceClient
	limit     int
}

// Searcher returns a compose.Searcher capped at limit results.
func (c *Client) Searcher(limit int) *Searcher {
	return &Searcher{directory: c.Directory, limit: limit}
}

// Search implements compose.Searcher.
func (s *Searcher) Search(ctx context.Context, text string, filterRooms bool) ([]compose.Entry, error) {
	resp, err := s.directory.Search(ctx, &rpc.SearchRequest{
		Text:        text,
		FilterRooms: filterRooms,
		Limit:       s.limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]compose.Entry, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, SearchEntry(r))
	}
	return out, nil
}

// AddUsersToRoom implements compose.RoomAdder.
func (c *Client) AddUsersToRoom(ctx context.Context, roomID string, users []compose.User) error {
	handles := make([]string, 0, len(users))
	for _, u := range users {
		handles = append(handles, u.Handle)
	}
	_, err := c.Room.AddUsersToRoom(ctx, &rpc.AddUsersRequest{RoomID: roomID, Users: handles})
	return err
}

// SearchEntry maps a directory result to the search row shape.
func SearchEntry(r rpc.SearchResult) compose.Entry {
	return compose.Entry{
		ID:           r.ID,
		Username:     r.Username,
		Name:         r.Name,
		Search:       true,
		Group:        r.Kind == rpc.KindGroup,
		LastActivity: unixMilli(r.RoomUpdatedAt),
	}
}

// RosterEntry maps a roster row to the roster row shape.
func RosterEntry(r rpc.RosterEntry) compose.Entry {
	return compose.Entry{
		ID:           r.JID,
		Name:         r.JID,
		FName:        r.DisplayName,
		Group:        r.Kind == rpc.KindGroup,
		LastActivity: unixMilli(r.RoomUpdatedAt),
	}
}

func unixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
