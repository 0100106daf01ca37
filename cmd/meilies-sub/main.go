// Command meilies-sub subscribes to one or more MeiliES streams and prints
// every record received until the connection closes or the process is
// interrupted.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/meilisearch/MeiliES/internal/resp"
	"github.com/spf13/cobra"
)

func main() {
	var addr string

	rootCmd := &cobra.Command{
		Use:   "meilies-sub <subscription>...",
		Short: "Subscribe to MeiliES streams",
		Long:  "Each <subscription> is a stream expression: name, name:from, or name:from:to.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close()

			items := make([]resp.Value, len(args)+1)
			items[0] = resp.BulkStringValue([]byte("subscribe"))
			for i, a := range args {
				items[i+1] = resp.BulkStringValue([]byte(a))
			}
			if _, err := conn.Write(resp.Encode(resp.ArrayValue(items...))); err != nil {
				return fmt.Errorf("writing subscribe request: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			go func() {
				<-ctx.Done()
				conn.Close()
			}()

			r := resp.NewReader(conn)
			for {
				v, err := r.ReadValue()
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("reading record: %w", err)
				}
				printRecord(v)
			}
		},
	}
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:6480", "meilies-server address")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printRecord(v resp.Value) {
	if v.Kind != resp.Array || len(v.Items) == 0 {
		fmt.Printf("%+v\n", v)
		return
	}
	kind := string(v.Items[0].Bulk)
	switch kind {
	case "subscribed":
		fmt.Printf("subscribed: %s\n", v.Items[1].Bulk)
	case "event":
		fmt.Printf("event: stream=%s number=%d name=%s data=%q\n",
			v.Items[1].Bulk, v.Items[2].Int, v.Items[3].Bulk, v.Items[4].Bulk)
	case "end-of-stream":
		fmt.Printf("end-of-stream: %s\n", v.Items[1].Bulk)
	case "error":
		fmt.Printf("error: stream=%s message=%s\n", v.Items[1].Bulk, v.Items[2].Bulk)
	default:
		fmt.Printf("%+v\n", v)
	}
}
