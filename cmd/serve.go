package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/daemon"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeInterval     time.Duration
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved budgets over a local read-only HTTP API",
	Long: `Serve saved budgets as JSON on a local address. The store is re-read on
an interval so edits from other tally commands show up, and changes are
pushed to /v1/stream subscribers as server-sent events.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running server's status endpoint",
	Args:  cobra.NoArgs,
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default: config serve.addr)")
	serveCmd.Flags().DurationVar(&flagServeInterval, "interval", 0, "How often to re-read the store (default: config serve.poll_interval_sec)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	p, location, err := openPersister(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	addr := cfg.Serve.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	interval := time.Duration(cfg.Serve.PollIntervalSec) * time.Second
	if flagServeInterval > 0 {
		interval = flagServeInterval
	}

	seed := defaultIncome(cfg)
	svc := daemon.New(daemon.Config{
		Addr:          addr,
		Interval:      interval,
		Source:        location,
		EventsBuffer:  flagServeEventsBuffer,
		DefaultIncome: &seed,
	}, p, logger)

	fmt.Printf("  tally serving on http://%s\n", addr)
	fmt.Printf("  Reading %s every %s\n", location, interval)
	fmt.Println("  Stop with Ctrl+C")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Serve.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("  Server at %s: unreachable (%v)\n", addr, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if flagJSON {
		return printJSON(st)
	}

	fmt.Printf("  Address: http://%s\n", addr)
	fmt.Printf("  Source: %s\n", st.Source)
	fmt.Printf("  Up since: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	if st.LastPollAt.IsZero() {
		fmt.Printf("  Last poll: pending\n")
	} else {
		fmt.Printf("  Last poll: %s\n", st.LastPollAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Poll count: %d\n", st.PollCount)
	fmt.Printf("  Saved months: %d\n", st.Summary.StoredMonths)
	fmt.Printf("  %s spent: %s of %s\n", st.Summary.Month.Label(),
		cli.FormatMoney(st.Summary.TotalSpent, cfg.General.Currency),
		cli.FormatMoney(st.Summary.TotalBudgeted, cfg.General.Currency))
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
