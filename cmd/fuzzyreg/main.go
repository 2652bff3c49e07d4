package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"fuzzyreg/internal/config"
	"fuzzyreg/internal/fuzzy"
	"fuzzyreg/internal/inference"
	"fuzzyreg/internal/logging"
	"fuzzyreg/internal/server"
	"fuzzyreg/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootCmd = &cobra.Command{
		Use:           "fuzzyreg",
		Short:         "Fuzzy temperature regulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	config.LoadEnv()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("FUZZYREG_CONFIG"), "Path to a YAML, JSON or TOML regulator config (built-in regulator if empty)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the run history database (SQLite)")

	inferCmd.Flags().Bool("json", false, "Print results as JSON")
	inferCmd.Flags().Bool("save", false, "Record results in the run history")
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
	historyCmd.Flags().Bool("clear", false, "Delete all saved runs")
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().Bool("no-history", false, "Do not record served inferences")

	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(variablesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the config file (or the built-in regulator) and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if dbPath != "" {
		cfg.History.Path = dbPath
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLogger(logger)
	return cfg, nil
}

func initEngine() (*config.Config, *inference.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	engine, err := cfg.Build(inference.WithLogger(logging.Logger()))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid regulator config: %w", err)
	}
	return cfg, engine, nil
}

var inferCmd = &cobra.Command{
	Use:   "infer <value>...",
	Short: "Run the regulator for one or more input values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := initEngine()
		if err != nil {
			return err
		}
		defer logging.Logger().Sync()

		inputs, err := parseInputs(args)
		if err != nil {
			return err
		}

		results := make([]inference.Result, 0, len(inputs))
		for _, x := range inputs {
			results = append(results, engine.Infer(x))
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
		} else {
			for _, res := range results {
				printReport(out, res)
			}
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			store, err := storage.NewSQLiteStore(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("failed to open run history: %w", err)
			}
			defer store.Close()

			ids, err := store.SaveRuns(cmd.Context(), results)
			if err != nil {
				return fmt.Errorf("failed to save runs: %w", err)
			}
			if !asJSON {
				fmt.Fprintf(out, "💾 Saved %d run(s) to %s\n", len(ids), cfg.History.Path)
			}
		}
		return nil
	},
}

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "Show the linguistic variables and rules of the regulator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, engine, err := initEngine()
		if err != nil {
			return err
		}
		printVariables(cmd.OutOrStdout(), engine)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved regulator runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
			n, err := store.ClearRuns(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "🗑️  Removed %d run(s)\n", n)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No saved runs.")
			return nil
		}
		for _, run := range runs {
			r := run.Result
			fmt.Fprintf(out, "%s  %s  x=%g  %s→%s  result=%g\n",
				run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), r.Input,
				r.SelectedRule.Input, r.SelectedRule.Output, r.Output)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the regulator over HTTP with Prometheus metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := initEngine()
		if err != nil {
			return err
		}
		log := logging.Logger()
		defer log.Sync()

		addr := cfg.Serve.Addr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		var store storage.RunStore
		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			s, err := storage.NewSQLiteStore(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("failed to open run history: %w", err)
			}
			defer s.Close()
			store = s
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "🌡️  Regulator listening on %s\n", addr)
		if err := server.New(engine, store, reg, log).ListenAndServe(ctx, addr); err != nil {
			log.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}

func parseInputs(args []string) ([]float64, error) {
	inputs := make([]float64, 0, len(args))
	for _, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid input value %q: %w", arg, err)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("invalid input value %q: must be a finite number", arg)
		}
		inputs = append(inputs, x)
	}
	return inputs, nil
}

// printReport writes the per-stage values of one inference, rules in table order.
func printReport(w io.Writer, res inference.Result) {
	fmt.Fprintf(w, "🌡️  Input: %g\n", res.Input)
	fmt.Fprintln(w, "Fuzzification:")
	for _, rr := range res.Rules {
		fmt.Fprintf(w, "  %-12s %g\n", rr.Rule.Input, rr.Degree)
	}
	fmt.Fprintln(w, "Activation:")
	for _, rr := range res.Rules {
		fmt.Fprintf(w, "  %-12s %g\n", rr.Rule.Output, rr.Activated)
	}
	fmt.Fprintln(w, "Rule scores:")
	for i, rr := range res.Rules {
		marker := " "
		if i == res.Selected {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s → %s: %g\n", marker, rr.Rule.Input, rr.Rule.Output, rr.Score)
	}
	fmt.Fprintf(w, "✅ Result: %g\n", res.Output)
}

func printVariables(w io.Writer, engine *inference.Engine) {
	section := func(title string, vars []*fuzzy.Variable) {
		fmt.Fprintln(w, title)
		for _, v := range vars {
			left, right := v.Domain()
			fmt.Fprintf(w, "  %s [%g, %g]\n", v.Name, left, right)
			for _, s := range v.Segments {
				flat := ""
				if s.Flat {
					flat = " (flat)"
				}
				fmt.Fprintf(w, "    %s%s\n", s, flat)
			}
		}
	}
	section("Input variables:", engine.Inputs())
	section("Output variables:", engine.Outputs())

	fmt.Fprintln(w, "Rules:")
	rules := engine.Rules()
	width := 0
	for _, r := range rules {
		width = max(width, len([]rune(r.Input)))
	}
	for _, r := range rules {
		fmt.Fprintf(w, "  %-*s → %s\n", width, r.Input, r.Output)
	}
}
