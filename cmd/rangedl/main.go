// Command rangedl reconstructs a byte-addressable payload of known
// length from a truncating, single-connection range server and verifies
// it against an expected SHA-256 digest.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/metricsserver"
	"go.ntppool.org/common/version"

	"github.com/Bogda165/rangedl/internal/config"
	"github.com/Bogda165/rangedl/internal/controller"
	"github.com/Bogda165/rangedl/internal/httptransport"
	"github.com/Bogda165/rangedl/internal/metrics"
	"github.com/Bogda165/rangedl/internal/strategy"
)

// CLI defines the command-line interface for rangedl.
type CLI struct {
	Addr    string `short:"a" env:"ADDR" help:"Server address as host:port."`
	Manager string `short:"m" env:"MANAGER" default:"basic_manager" enum:"basic_manager,random_manager" help:"Request strategy: basic_manager or random_manager."`
	Hash    string `short:"H" env:"HASH" help:"Expected lowercase hex SHA-256 of the assembled payload."`

	Config string `help:"Optional YAML file supplying addr/manager/hash defaults." type:"path"`

	MinChunk uint64 `default:"1" help:"Offset into a free gap at which random_manager starts its request; gaps no longer than this are requested whole."`

	MetricsPort int    `default:"9091" help:"Port for the Prometheus metrics server."`
	LogLevel    string `default:"info" help:"Log level (debug, info, warn, error)."`
	Verbose     bool   `short:"v" help:"Enable verbose logging."`

	Version kong.VersionFlag `short:"V" help:"Show version."`
}

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("rangedl"),
		kong.Description("Range-based downloader for a truncating HTTP/1.1 test server"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version()},
	)

	if cli.Verbose {
		os.Setenv("LOG_LEVEL", "DEBUG")
	} else if cli.LogLevel != "" {
		os.Setenv("LOG_LEVEL", cli.LogLevel)
	}

	log := logger.Setup()

	if err := run(context.Background(), &cli, log); err != nil {
		log.Error("fatal error", "error", err)
		kctx.Exit(1)
	}
}

func run(ctx context.Context, cli *CLI, log *slog.Logger) error {
	addr, managerName, hash := cli.Addr, cli.Manager, cli.Hash
	if cli.Config != "" {
		f, err := config.Load(cli.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		addr, managerName, hash = f.Merge(addr, managerName, hash)
	}

	if addr == "" {
		return fmt.Errorf("missing required --addr/ADDR")
	}
	if hash == "" {
		return fmt.Errorf("missing required --hash/HASH")
	}

	var strat strategy.Strategy
	switch managerName {
	case "basic_manager":
		strat = strategy.Sequential{}
	case "random_manager":
		strat = strategy.Random{MinLen: cli.MinChunk}
	default:
		return fmt.Errorf("unknown manager %q", managerName)
	}

	metricsSrv := metricsserver.New()
	collectors := metrics.New(metricsSrv.Registry())

	go func() {
		log.Info("metrics server starting", "port", cli.MetricsPort)
		if err := metricsSrv.ListenAndServe(ctx, cli.MetricsPort); err != nil {
			log.Error("metrics server error", "error", err)
		}
	}()

	tr := httptransport.New(addr, httptransport.WithLogger(log))
	defer tr.Close()

	ctl := controller.New(tr, strat,
		controller.WithLogger(log),
		controller.WithMetrics(collectors),
	)

	log.Info("starting download", "addr", addr, "manager", managerName)

	data, err := ctl.Run(ctx, hash)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}

	log.Info("download complete and digest verified", "bytes", len(data))
	return nil
}
