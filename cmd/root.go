package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/hub"
	"github.com/inference-sim/warehouse-sim/sim/trace"
	"github.com/inference-sim/warehouse-sim/www"
)

var (
	configPath    string        // YAML config file; empty = built-in defaults
	seed          int64         // Seed for arrivals, orders and initial stock
	logLevel      string        // Log verbosity level
	listenAddr    string        // Observer HTTP listen address
	duration      time.Duration // Stop after this long; 0 = until interrupted
	traceLevel    string        // Task trace level
	traceMax      int           // Max trace records kept
	stockAttempts int           // Initial stock seeding draws
	stepInterval  time.Duration // Pause after each robot step
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "warehouse-sim",
	Short: "Concurrent simulation of a two-robot automated warehouse",
}

// runCmd executes the simulation using the config file plus CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the warehouse simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := mustEffectiveConfig(cmd)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runWarehouse(ctx, cfg, duration, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// configCmd prints the effective configuration as YAML
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustEffectiveConfig(cmd)
		out, err := yaml.Marshal(cfg)
		if err != nil {
			logrus.Fatalf("Failed to encode config: %v", err)
		}
		fmt.Print(string(out))
	},
}

func mustEffectiveConfig(cmd *cobra.Command) WarehouseConfig {
	cfg, err := LoadWarehouseConfig(configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// applyFlagOverrides copies only flags the user set, so YAML values survive
// flag defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *WarehouseConfig) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = listenAddr
	}
	if flags.Changed("trace") {
		cfg.Trace.Level = traceLevel
	}
	if flags.Changed("trace-max") {
		cfg.Trace.MaxRecords = traceMax
	}
	if flags.Changed("stock-attempts") {
		cfg.Sim.InitialStockAttempts = stockAttempts
	}
	if flags.Changed("step-interval") {
		cfg.Sim.Timing.StepInterval = stepInterval
	}
}

// runWarehouse runs the simulation, and the observer server when an address
// is configured, until ctx is done or d elapses. Final metrics go to out.
func runWarehouse(ctx context.Context, cfg WarehouseConfig, d time.Duration, out io.Writer) error {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	h := hub.New()
	defer h.Close()
	tr := trace.NewSimulationTrace(cfg.TraceConfig())
	s := sim.NewSimulator(cfg.Sim, h, sim.WallClock{}, tr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(gctx) })

	if cfg.Server.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           www.NewRouter(h, s.State, tr),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logrus.Infof("Observer server listening on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("observer server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	s.State.Metrics().Print()
	if tr.Enabled() {
		printTraceSummary(out, trace.Summarize(tr))
	}
	return err
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Task Trace Summary ===")
	fmt.Fprintf(w, "Total Tasks          : %d\n", s.TotalTasks)
	fmt.Fprintf(w, "Stored               : %d\n", s.StoredCount)
	fmt.Fprintf(w, "Lost                 : %d\n", s.LostCount)
	fmt.Fprintf(w, "Delivered            : %d\n", s.DeliveredCount)
	fmt.Fprintf(w, "Unfulfillable        : %d\n", s.UnfulfillableCount)
	fmt.Fprintf(w, "Mean Steps           : %.2f\n", s.MeanSteps)
	fmt.Fprintf(w, "Max Steps            : %d\n", s.MaxSteps)
	shelves := make([]int, 0, len(s.ShelfDistribution))
	for shelf := range s.ShelfDistribution {
		shelves = append(shelves, shelf)
	}
	sort.Ints(shelves)
	for _, shelf := range shelves {
		fmt.Fprintf(w, "Shelf %-3d tasks      : %d\n", shelf, s.ShelfDistribution[shelf])
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, configCmd} {
		c.Flags().StringVar(&configPath, "config", "", "Path to warehouse YAML config (defaults built in)")
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for stock arrivals, orders and initial stock")
		c.Flags().StringVar(&listenAddr, "addr", ":8080", "Observer HTTP listen address (empty disables)")
		c.Flags().StringVar(&traceLevel, "trace", "none", "Task trace level (none, tasks)")
		c.Flags().IntVar(&traceMax, "trace-max", 0, "Max task records kept (0 = unbounded)")
		c.Flags().IntVar(&stockAttempts, "stock-attempts", 20, "Random initial stock draws")
		c.Flags().DurationVar(&stepInterval, "step-interval", 250*time.Millisecond, "Pause after each robot grid step")
	}
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 = until interrupted)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
