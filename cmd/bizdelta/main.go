package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/bizdelta/internal/config"
	"github.com/username/bizdelta/pkg/bdate"
	"github.com/username/bizdelta/pkg/business"
	"github.com/username/bizdelta/pkg/recur"
)

var (
	configPath string
	logger     *zap.Logger
	cfg        *config.Config
	settings   *business.Settings
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bizdelta",
		Short:         "Business-day date arithmetic",
		Long:          "Compute and apply deltas in business days, hours, minutes and seconds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine
			_ = godotenv.Load()

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger("info")
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger = initFileLogger(cfg.Log.File, cfg.Log.Level)
			} else {
				initLogger(cfg.Log.Level)
			}

			settings, err = cfg.Settings(logger)
			if err != nil {
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml, $HOME/.bizdelta, /etc/bizdelta)")

	rootCmd.AddCommand(
		diffCmd(),
		shiftCmd("add", "Add a business delta to a date", false),
		shiftCmd("sub", "Subtract a business delta from a date", true),
		isBDayCmd(),
		bdailyCmd(),
		cronCmd(),
	)
	return rootCmd
}

func diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff A B",
		Short: "Business delta from B to A",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := settings.Diff(args[0], args[1])
			if err != nil {
				return err
			}
			logger.Debug("Computed business delta",
				zap.String("a", args[0]),
				zap.String("b", args[1]),
				zap.Stringer("delta", d))
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func shiftCmd(use, short string, sub bool) *cobra.Command {
	var flags deltaFlags

	cmd := &cobra.Command{
		Use:   use + " DATE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.magnitudes(cmd)
			if err != nil {
				return err
			}
			var p bdate.Point
			if sub {
				p, err = settings.Sub(args[0], m)
			} else {
				p, err = settings.Add(args[0], m)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func isBDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isbday DATE",
		Short: "Report whether DATE is a business day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := settings.IsBusinessDay(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func bdailyCmd() *cobra.Command {
	var count int
	var until string

	cmd := &cobra.Command{
		Use:   "bdaily START",
		Short: "List business days from START",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := settings.Window()
			if err != nil {
				return err
			}
			start, err := settings.Parse(args[0])
			if err != nil {
				return err
			}
			var opts []recur.Option
			if count > 0 {
				opts = append(opts, recur.Count(count))
			}
			if until != "" {
				u, err := settings.Parse(until)
				if err != nil {
					return fmt.Errorf("--until: %w", err)
				}
				opts = append(opts, recur.Until(u))
			}

			days, err := recur.BDaily(start, w, opts...)
			if err != nil {
				return err
			}
			for _, d := range days {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of business days")
	cmd.Flags().StringVar(&until, "until", "", "Last date to include")
	return cmd
}

func cronCmd() *cobra.Command {
	var count int
	var after string

	cmd := &cobra.Command{
		Use:   "cron EXPR",
		Short: "List firings of a cron expression that fall on business days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := settings.Window()
			if err != nil {
				return err
			}
			from := settings.Clock()
			if after != "" {
				p, err := settings.ParseDateTime(after)
				if err != nil {
					return fmt.Errorf("--after: %w", err)
				}
				from = p.Time()
			}

			firings, err := recur.CronBusinessDays(args[0], from, w, count)
			if err != nil {
				return err
			}
			for _, t := range firings {
				fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of firings")
	cmd.Flags().StringVar(&after, "after", "", "Start after this time (default: now)")
	return cmd
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core)
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
