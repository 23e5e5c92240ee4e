package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/fincalc/internal/cache"
	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/history"
	_ "github.com/rgehrsitz/fincalc/internal/history/sqlite"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cacheTTL bounds how long a memoized outcome lives in Redis
const cacheTTL = 24 * time.Hour

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fincalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "fincalc",
	Short: "Personal finance calculator CLI",
	Long: "Loan EMI and prepayment, investment growth, income tax and GST calculators.\n" +
		"Amounts are computed at full precision and rounded only for display.",
	SilenceUsage: true,
}

// app is the per-invocation wiring shared by every command
type app struct {
	config   *domain.Configuration
	engine   *calculation.CalculationEngine
	runner   cache.Runner
	memo     cache.Cache
	store    history.Store
	currency *output.CurrencyFormatter
	logger   logging.Logger
	debug    bool
	closers  []func() error
}

// newApp reads the persistent flags and builds the engine, cache and history store
func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()

	levelName, _ := flags.GetString("log-level")
	level := logging.LevelFromEnv()
	if levelName != "" {
		level = logging.ParseLevel(levelName)
	}
	debugMode, _ := flags.GetBool("debug")
	if debugMode {
		level = slog.LevelDebug
	}
	noColor, _ := flags.GetBool("no-color")
	a := &app{
		logger: logging.New(slog.New(logging.NewHandler(cmd.ErrOrStderr(), level, noColor))),
		debug:  debugMode,
	}

	defaults, err := config.DefaultConfiguration()
	if err != nil {
		return nil, err
	}
	cfg := defaults
	if path, _ := flags.GetString("config"); path != "" {
		user, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = config.Merge(defaults, user)
		a.logger.Debugf("loaded %d regimes and %d profiles from %s", len(user.Regimes), len(user.Profiles), path)
	}

	a.memo = cache.NewMemoryCache()
	if addr, _ := flags.GetString("redis"); addr != "" {
		rc := cache.NewRedisCache(addr, cacheTTL)
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			a.logger.Warnf("redis at %s unavailable, using in-process cache: %v", addr, err)
			_ = rc.Close()
		} else {
			a.memo = rc
			a.closers = append(a.closers, rc.Close)
		}
	}

	if err := a.configure(cfg); err != nil {
		return nil, err
	}

	locale, _ := flags.GetString("locale")
	symbol, _ := flags.GetString("symbol")
	a.currency = output.NewCurrencyFormatter(locale, symbol)

	path, _ := flags.GetString("history")
	if path == "" {
		path = os.Getenv("FINCALC_HISTORY")
	}
	if path != "" {
		limit, _ := flags.GetInt("history-limit")
		store, err := history.Open(path, limit)
		if err != nil {
			return nil, err
		}
		a.store = store
		a.closers = append(a.closers, store.Close)
	}
	return a, nil
}

// configure (re)builds the engine over cfg's regimes
func (a *app) configure(cfg *domain.Configuration) error {
	engine, err := config.NewEngine(cfg)
	if err != nil {
		return err
	}
	engine.SetLogger(a.logger)
	engine.Debug = a.debug
	a.config = cfg
	a.engine = engine
	a.runner = cache.NewMemoRunner(engine, a.memo)
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warnf("close: %v", err)
		}
	}
}

// run evaluates one request and records it in history when a store is configured
func (a *app) run(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationOutcome, error) {
	out, err := a.runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if a.store != nil {
		if err := a.store.Save(ctx, history.NewRecord(out)); err != nil {
			a.logger.Warnf("failed to save history: %v", err)
		}
	}
	return out, nil
}

// formatter resolves --format, binding the console formatter to --locale
func (a *app) formatter(cmd *cobra.Command) (output.Formatter, error) {
	name, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unsupported format %q (available: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if cf, ok := f.(output.ConsoleFormatter); ok {
		cf.Currency = a.currency
		f = cf
	}
	return f, nil
}

func (a *app) render(cmd *cobra.Command, outcomes ...*domain.CalculationOutcome) error {
	f, err := a.formatter(cmd)
	if err != nil {
		return err
	}
	data, err := f.Format(outcomes)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// runRequest is the RunE body shared by the single-calculator commands
func runRequest(cmd *cobra.Command, build func(cmd *cobra.Command) (domain.CalculationRequest, error)) error {
	req, err := build(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.run(cmd.Context(), req)
	if err != nil {
		return err
	}
	return a.render(cmd, out)
}

// decimalFlag parses a flag holding an amount or rate, e.g. "5,00,000" or "8.5"
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("--%s is required", name)
	}
	v, err := output.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return v, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML file with extra tax regimes and calculator profiles")
	pf.StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	pf.String("locale", output.DefaultLocale, "Locale used to group digits in console output")
	pf.String("symbol", "₹", "Currency symbol used in console output")
	pf.String("history", "", "History file; .db/.sqlite uses SQLite, anything else JSON (default $FINCALC_HISTORY)")
	pf.Int("history-limit", history.DefaultLimit, "Number of calculations kept in history")
	pf.String("redis", "", "Redis address used to memoize results, e.g. localhost:6379")
	pf.Bool("debug", false, "Enable debug logging")
	pf.String("log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	pf.Bool("no-color", false, "Disable colored log output")

	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
