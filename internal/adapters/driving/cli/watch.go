package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helioshr/policyqa/internal/adapters/driving/watch"
)

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest files dropped into a directory",
	Long: `Watches a directory and ingests every file dropped into it for the
tenant given via --tenant. Processed files are renamed with an
.ingested suffix. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "quiet period before a file is picked up")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if tenantID == "" {
		return errors.New("a tenant is required: pass --tenant or set POLICYQA_TENANT")
	}
	if err := ensureServices(); err != nil {
		return err
	}

	w, err := watch.New(ingestService, watch.Config{
		TenantID: tenantID,
		Dir:      args[0],
		Settle:   watchSettle,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for tenant %s (Ctrl-C to stop)\n", args[0], tenantID)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
