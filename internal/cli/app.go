package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nrminor/py-refman/internal/binding"
	"github.com/nrminor/py-refman/internal/buildinfo"
	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/hosterr"
	"github.com/nrminor/py-refman/internal/infra/datasetprobe"
	"github.com/nrminor/py-refman/internal/infra/fsregistry"
	"github.com/nrminor/py-refman/internal/infra/httpclient"
	"github.com/nrminor/py-refman/internal/infra/logger"
	"github.com/nrminor/py-refman/internal/infra/registryfinder"
	"github.com/nrminor/py-refman/internal/infra/settings"
	"github.com/nrminor/py-refman/internal/infra/telemetry"
	"github.com/nrminor/py-refman/internal/infra/yamlmanifest"
	"github.com/nrminor/py-refman/internal/registry"
	"github.com/nrminor/py-refman/internal/taskrun"
)

type globalFlags struct {
	debug       bool
	trace       bool
	metricsFile string
	configFile  string
	registry    string
	global      bool
}

// app holds everything a command needs once flags are parsed.
type app struct {
	flags globalFlags

	stdout io.Writer
	stderr io.Writer

	interrupt taskrun.Interrupt
	settings  settings.Settings
	binding   *binding.Binding
	metrics   *telemetry.Metrics
	logger    *slog.Logger

	closers []func() error
}

func (a *app) location() domain.Location {
	return domain.Location{RequestedPath: a.flags.registry, Global: a.flags.global}
}

// setup loads settings and wires adapters, runner and binding.
func (a *app) setup() error {
	s, err := settings.Load(settings.Options{ConfigFile: a.flags.configFile})
	if err != nil {
		return hosterr.RegistryErr(err)
	}
	if a.flags.debug {
		s.Debug = true
	}
	a.settings = s

	finder := registryfinder.NewFinder()
	if cleanup, err := logger.Setup(logger.Config{Root: a.logRoot(finder), Debug: s.Debug}); err == nil {
		a.closers = append(a.closers, cleanup)
	}
	a.logger = logger.L()

	if a.flags.trace {
		shutdown, err := telemetry.InitTracer("refman", buildinfo.Version, a.stderr)
		if err != nil {
			return hosterr.ReportErr(err)
		}
		a.closers = append(a.closers, func() error { return shutdown(context.Background()) })
	}

	a.metrics = telemetry.NewMetrics()

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = s.HTTPTimeout
	httpCfg.UserAgent = buildinfo.UserAgent(s.UserAgent)
	client := httpclient.New(httpCfg)

	downloader := registry.NewDownloader(
		httpclient.NewFetcher(client),
		registry.WithConcurrency(s.DownloadConcurrency),
		registry.WithObserver(a.metrics),
		registry.WithLogger(a.logger),
	)

	manager := registry.NewManager(registry.Deps{
		Store:          yamlmanifest.NewStore(),
		Locator:        finder,
		Initializer:    fsregistry.NewInitializer(),
		Downloader:     downloader,
		GlobalManifest: s.GlobalManifest(),
		Logger:         a.logger,
	})

	builder := datasetprobe.NewBuilder(
		httpclient.NewProber(httpclient.WithClient(client), httpclient.WithTimeout(s.ProbeTimeout)),
		datasetprobe.WithConcurrency(s.ProbeConcurrency),
		datasetprobe.WithStrictExtensions(s.StrictExtensions),
	)

	interrupt := a.interrupt
	if interrupt == nil {
		interrupt = taskrun.NewOSInterrupt()
	}
	runner := taskrun.New(
		taskrun.WithInterrupt(interrupt),
		taskrun.WithLogger(a.logger),
		taskrun.WithGrace(s.CancelGrace),
		taskrun.WithMetrics(a.metrics),
	)

	a.binding = binding.New(manager, builder, runner, binding.WithLogger(a.logger))
	a.logger.Debug("cli.setup", "home", s.Home, "config", s.ConfigFile, "version", buildinfo.Version)
	return nil
}

// logRoot picks the directory whose .refman/logs receives the log file.
func (a *app) logRoot(finder *registryfinder.Finder) string {
	if p := strings.TrimSpace(a.flags.registry); p != "" {
		if ext := strings.ToLower(filepath.Ext(p)); ext == ".yaml" || ext == ".yml" {
			return filepath.Dir(p)
		}
		return p
	}
	if a.flags.global {
		return a.settings.Home
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := finder.FindRoot(wd); err == nil {
		return root
	}
	return wd
}

// shutdown exports metrics and releases logger and tracer, whatever the command did.
func (a *app) shutdown() error {
	var errs []error
	if a.flags.metricsFile != "" && a.metrics != nil {
		if err := a.metrics.WriteTextfile(a.flags.metricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
