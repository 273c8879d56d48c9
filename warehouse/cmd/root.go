// Package cmd implements the warehouse command line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/go-arrower/warehouse"
	"github.com/go-arrower/warehouse/alog"
	sharedcmd "github.com/go-arrower/warehouse/cmd"
	"github.com/go-arrower/warehouse/inventory"
	"github.com/go-arrower/warehouse/repository"
)

// cli holds the flags and the dependencies shared by all commands of one run.
type cli struct {
	configFile string
	logLevel   string
	storeDir   string
	metrics    bool

	conf     *warehouse.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	manager  *inventory.Manager
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Manage the stock of electronics and groceries in a warehouse.",
		Long: `warehouse keeps one inventory per category of items.
Without a store the inventory only lives as long as the command runs,
use --store-dir or the configuration to keep it between runs.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.setup(cmd.Context(), cmd.ErrOrStderr(), cmd.Flags().Changed("store-dir"))
			if err != nil {
				return err
			}

			cmd.SetContext(ctx)

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.printMetrics(cmd.OutOrStdout())
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&c.configFile, "config", "", "configuration file, e.g. warehouse.yaml")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "overwrite the log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&c.storeDir, "store-dir", "", "persist the inventory as JSON files in this directory")
	cmd.PersistentFlags().BoolVar(&c.metrics, "metrics", false, "print the collected metrics after the command")

	return cmd
}

// NewWarehouseCLI initialises the complete warehouse cli with its commands and returns the root command.
func NewWarehouseCLI() *cobra.Command {
	c := &cli{}

	rootCmd := newRootCmd(c)
	rootCmd.AddCommand(sharedcmd.Version("warehouse"))
	rootCmd.AddCommand(newDemoCmd(c))
	rootCmd.AddCommand(newListCmd(c))
	rootCmd.AddCommand(newIncreaseCmd(c))
	rootCmd.AddCommand(newRemoveCmd(c))
	rootCmd.AddCommand(newSeedCmd(c))

	return rootCmd
}

// Execute runs the warehouse cli.
func Execute() {
	if err := NewWarehouseCLI().ExecuteContext(context.Background()); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds all dependencies of the manager.
// It is called before every command.
func (c *cli) setup(ctx context.Context, logOut io.Writer, storeDirChanged bool) (context.Context, error) {
	conf, err := warehouse.Load(c.configFile)
	if err != nil {
		return ctx, err //nolint:wrapcheck // error message is already descriptive
	}

	if c.logLevel != "" {
		if err := conf.Log.Level.UnmarshalText([]byte(c.logLevel)); err != nil {
			return ctx, fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	if storeDirChanged {
		conf.Store.Enabled = true
		conf.Store.Dir = c.storeDir
	}

	c.conf = conf
	c.logger = newLogger(conf.Log, logOut)

	ctx = alog.AddAttrs(ctx,
		slog.String("application", conf.ApplicationName),
		slog.String("environment", string(conf.Environment)),
		slog.String("run", uuid.New().String()),
	)
	if conf.InstanceName != "" {
		ctx = alog.AddAttr(ctx, slog.String("instance", conf.InstanceName))
	}

	opts := []inventory.Option{
		inventory.WithLogger(c.logger),
		inventory.WithTracerProvider(sdktrace.NewTracerProvider()),
	}

	if c.metrics {
		c.registry = prometheus.NewRegistry()

		exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(c.registry))
		if err != nil {
			return ctx, fmt.Errorf("could not create metrics exporter: %w", err)
		}

		opts = append(opts, inventory.WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))))
	}

	if conf.Store.Enabled {
		store, err := repository.NewJSONStore(conf.Store.Dir)
		if err != nil {
			return ctx, err //nolint:wrapcheck // error message is already descriptive
		}

		opts = append(opts, inventory.WithStore(store))
	}

	c.manager, err = inventory.LoadManager(opts...)
	if err != nil {
		return ctx, err //nolint:wrapcheck // error message is already descriptive
	}

	c.logger.DebugContext(ctx, "warehouse ready",
		slog.Bool("store", conf.Store.Enabled),
		slog.String("store_dir", conf.Store.Dir),
	)

	return ctx, nil
}

// seedIfEmpty seeds the sample data, if the configuration asks for it and there is no data yet.
func (c *cli) seedIfEmpty(ctx context.Context) error {
	if !c.conf.Seed {
		return nil
	}

	empty, err := c.manager.IsEmpty(ctx)
	if err != nil || !empty {
		return err //nolint:wrapcheck // error message is already descriptive
	}

	return c.manager.Seed(ctx) //nolint:wrapcheck // error message is already descriptive
}

func newLogger(conf warehouse.Log, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if conf.Format == warehouse.JSONFormat {
		h = slog.NewJSONHandler(w, opts)
	}

	return alog.New(alog.WithLevel(conf.Level), alog.WithHandler(h))
}
