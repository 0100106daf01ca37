// Command meilies-pub publishes a single event to a MeiliES stream and
// prints the server's reply.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/meilisearch/MeiliES/internal/resp"
	"github.com/spf13/cobra"
)

func main() {
	var addr string
	var timeout time.Duration

	rootCmd := &cobra.Command{
		Use:   "meilies-pub <stream> <event-name> <event-data>",
		Short: "Publish one event to a MeiliES stream",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := net.DialTimeout("tcp", addr, timeout)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close()
			conn.SetDeadline(time.Now().Add(timeout))

			req := resp.ArrayValue(
				resp.BulkStringValue([]byte("publish")),
				resp.BulkStringValue([]byte(args[0])),
				resp.BulkStringValue([]byte(args[1])),
				resp.BulkStringValue([]byte(args[2])),
			)
			if _, err := conn.Write(resp.Encode(req)); err != nil {
				return fmt.Errorf("writing request: %w", err)
			}

			reply, err := resp.NewReader(conn).ReadValue()
			if err != nil {
				return fmt.Errorf("reading reply: %w", err)
			}
			return printReply(reply)
		},
	}
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:6480", "meilies-server address")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "connection and I/O timeout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printReply(v resp.Value) error {
	switch v.Kind {
	case resp.SimpleString:
		fmt.Println(v.Str)
		return nil
	case resp.Error:
		return fmt.Errorf("server error: %s", v.Str)
	default:
		fmt.Printf("%+v\n", v)
		return nil
	}
}
