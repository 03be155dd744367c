// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/geowatch/internal/api"
	"github.com/ManuGH/geowatch/internal/audit"
	"github.com/ManuGH/geowatch/internal/cache"
	"github.com/ManuGH/geowatch/internal/config"
	"github.com/ManuGH/geowatch/internal/daemon"
	"github.com/ManuGH/geowatch/internal/health"
	gwlog "github.com/ManuGH/geowatch/internal/log"
	"github.com/ManuGH/geowatch/internal/telemetry"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (JSON)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Configure logger with safe defaults until config is loaded
	gwlog.Configure(gwlog.Config{
		Level:   "info",
		Service: "geowatch",
		Version: version,
	})

	logger := gwlog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Determine config path:
	// - Explicit via --config
	// - Otherwise auto-load ${GEOWATCH_DATA_DIR}/config.json if it exists
	explicitConfigPath := strings.TrimSpace(*configPath)
	effectiveConfigPath := explicitConfigPath
	if effectiveConfigPath == "" {
		dataDir := strings.TrimSpace(config.ParseString("GEOWATCH_DATA_DIR", "./data"))
		if dataDir == "" {
			dataDir = "./data"
		}
		autoPath := filepath.Join(dataDir, "config.json")
		if _, err := os.Stat(autoPath); err == nil {
			effectiveConfigPath = autoPath
		}
	}

	// Load configuration with precedence: ENV > File > Defaults
	loader := config.NewLoader(effectiveConfigPath, version)
	doc, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", effectiveConfigPath).
			Msg("failed to load configuration")
	}

	snap := config.BuildSnapshot(doc)

	// Apply the runtime log level now that config is loaded. Configure is
	// once-only, so the level is adjusted separately.
	gwlog.SetLevel(snap.Runtime.LogLevel)

	switch {
	case explicitConfigPath != "":
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", explicitConfigPath).
			Msg("loaded configuration from file")
	case effectiveConfigPath != "":
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file(auto)").
			Str("path", effectiveConfigPath).
			Msg("loaded configuration from file")
	default:
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("addr", snap.Runtime.ListenAddr).
		Msg("starting geowatch")

	logger.Info().Msgf("→ System: %s %s", doc.SystemInfo.Name, doc.SystemInfo.Version)
	logger.Info().Msgf("→ Region: %s", doc.OperationalSettings.RegionOfInterest)
	logger.Info().Msgf("→ Alert thresholds: high=%.2f medium=%.2f",
		doc.OperationalSettings.AlertThresholdHigh, doc.OperationalSettings.AlertThresholdMedium)
	if snap.Runtime.APIToken != "" {
		logger.Info().Msg("→ API token: configured")
	} else if snap.Runtime.AllowAnonymous {
		logger.Warn().
			Str("security", "weak").
			Msg("→ API token: NOT configured, anonymous access enabled")
	} else {
		logger.Warn().Msg("→ API token: NOT configured, protected endpoints will reject all requests")
	}
	logger.Info().Msgf("→ Data dir: %s", snap.Runtime.DataDir)

	// Tracing is a no-op provider unless explicitly enabled.
	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        snap.Runtime.Telemetry.Enabled,
		ServiceName:    "geowatch",
		ServiceVersion: version,
		ExporterType:   snap.Runtime.Telemetry.Protocol,
		Endpoint:       snap.Runtime.Telemetry.Endpoint,
		SamplingRate:   snap.Runtime.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("failed to initialize tracing")
	}

	// Hot reload support: watch config file and allow SIGHUP/API-triggered reload.
	holder := config.NewHolder(doc, config.NewLoader(effectiveConfigPath, version), effectiveConfigPath)

	// Audit trail: always logged, persisted when a store path is available.
	auditLogger := audit.NewLogger()
	auditDBPath := strings.TrimSpace(snap.Runtime.AuditDBPath)
	if auditDBPath == "" {
		auditDBPath = filepath.Join(snap.Runtime.DataDir, "audit.db")
	}
	auditStore, err := audit.NewStore(auditDBPath)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("event", "audit.store_unavailable").
			Str("path", auditDBPath).
			Msg("audit events will not be persisted")
		auditStore = nil
	} else {
		auditLogger = auditLogger.WithStore(auditStore)
	}

	// The startup load is the first entry of the audit trail.
	loadResource := effectiveConfigPath
	if loadResource == "" {
		loadResource = "env+defaults"
	}
	auditLogger.Log(audit.Event{
		Type:     audit.EventConfigReload,
		Actor:    "system",
		Action:   "loaded configuration at startup",
		Resource: loadResource,
		Result:   "success",
	})

	responseCache := cache.New(snap.Runtime.RedisAddr, gwlog.WithComponent("cache"))

	hm := health.NewManager(version)
	if effectiveConfigPath != "" {
		hm.RegisterChecker(health.NewFileChecker("config_file", effectiveConfigPath))
	}
	hm.RegisterChecker(health.NewWritableDirChecker("data_dir", snap.Runtime.DataDir))
	hm.RegisterChecker(health.NewDocumentChecker(func() error {
		return config.Validate(holder.Get())
	}))

	s := api.New(api.Options{
		Snapshot:   snap,
		Holder:     holder,
		Health:     hm,
		Audit:      auditLogger,
		AuditStore: auditStore,
		Cache:      responseCache,
		Version:    version,
	})

	deps := daemon.Deps{
		Logger:         logger,
		APIHandler:     s.Router(),
		MetricsHandler: promhttp.Handler(),
	}

	mgr, err := daemon.NewManager(daemon.ServerConfigFromRuntime(snap.Runtime), deps)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "manager.creation.failed").
			Msg("failed to create daemon manager")
	}

	mgr.RegisterShutdownHook("tracer", tp.Shutdown)
	mgr.RegisterShutdownHook("config_watcher", func(context.Context) error {
		holder.Stop()
		return nil
	})
	if auditStore != nil {
		mgr.RegisterShutdownHook("audit_store", func(context.Context) error {
			return auditStore.Close()
		})
	}

	// Start daemon app (blocks until shutdown)
	app := daemon.NewApp(logger, mgr, holder, s)
	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "manager.failed").
			Msg("daemon app failed")
	}

	logger.Info().Msg("server exiting")
}
