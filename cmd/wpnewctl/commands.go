package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/tui/client"
	"github.com/spf13/cobra"
)

func newStatusCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Session.GetSessionStatus(ctx, &rpc.Empty{})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				o.printf("Session: %s\n", resp.Session)
				o.printf("Status:  %s (%s)\n", resp.State, resp.Description)
				if resp.PhoneNumber != "" {
					o.printf("Phone:   +%s\n", resp.PhoneNumber)
				}
				o.printf("Chats:   %d\n", resp.DirectCount)
				o.printf("Groups:  %d\n", resp.GroupCount)
				o.printf("Uptime:  %s\n", (time.Duration(resp.UptimeMs) * time.Millisecond).Round(time.Second))
				return nil
			})
		},
	}
}

func newRosterCmd(o *options) *cobra.Command {
	var (
		kind  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List conversations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Roster.ListRoster(ctx, &rpc.ListRosterRequest{Kind: kind, Limit: limit})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "JID\tKIND\tNAME\tUPDATED")
				for _, e := range resp.Entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.JID, e.Kind, e.DisplayName, formatMillis(e.RoomUpdatedAt))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "d for direct chats, g for groups")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 = all)")
	return cmd
}

func newSearchCmd(o *options) *cobra.Command {
	var (
		rooms bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search the directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Directory.Search(ctx, &rpc.SearchRequest{
					Text:        strings.Join(args, " "),
					FilterRooms: rooms,
					Limit:       limit,
				})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "USERNAME\tKIND\tNAME\tSCORE")
				for _, r := range resp.Results {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.Username, r.Kind, r.Name, r.Score)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&rooms, "rooms", false, "include groups")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum results")
	return cmd
}

func newDirectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "direct <jid|phone>",
		Short: "Start a direct conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Room.StartDirect(ctx, &rpc.StartDirectRequest{JID: args[0]})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				o.printf("%s\n", resp.JID)
				return nil
			})
		},
	}
}

func newGroupCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create groups and add members",
	}

	create := &cobra.Command{
		Use:   "create <name> <jid>...",
		Short: "Create a group with the given members",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Room.CreateGroup(ctx, &rpc.CreateGroupRequest{Name: args[0], Users: args[1:]})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				o.printf("%s\n", resp.JID)
				return nil
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <group-jid> <jid>...",
		Short: "Add members to an existing group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Room.AddUsersToRoom(ctx, &rpc.AddUsersRequest{RoomID: args[0], Users: args[1:]})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				o.printf("added %d to %s\n", resp.Added, args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(create, add)
	return cmd
}

func newSessionsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect sessions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.call(func(ctx context.Context, c *client.Client) error {
				resp, err := c.Session.ListSessions(ctx, &rpc.Empty{})
				if err != nil {
					return err
				}
				if o.json {
					return o.printJSON(resp)
				}
				for _, s := range resp.Sessions {
					state := "stopped"
					if s.DaemonRunning {
						state = "running"
					}
					o.printf("%-16s %-8s %s\n", s.Name, state, s.Path)
				}
				return nil
			})
		},
	})
	return cmd
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
