package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"tinygo.org/x/bluetooth"

	"github.com/coreman2200/blestrip/internal/command"
	"github.com/coreman2200/blestrip/internal/config"
	"github.com/coreman2200/blestrip/internal/diagnostics/bus"
	"github.com/coreman2200/blestrip/internal/diagnostics/stream"
	"github.com/coreman2200/blestrip/internal/logging"
	"github.com/coreman2200/blestrip/internal/metrics"
	"github.com/coreman2200/blestrip/internal/server"
	"github.com/coreman2200/blestrip/internal/strip"
	"github.com/coreman2200/blestrip/internal/transport"
	"github.com/coreman2200/blestrip/internal/transport/ble"
	"github.com/coreman2200/blestrip/internal/transport/wsock"
)

// app owns everything brought up by start. stop tears down whatever start
// managed to build, in reverse order.
type app struct {
	cfg  *config.Config
	log  zerolog.Logger
	open func(config.Strip) (strip.Driver, error)

	bus       *bus.Bus
	registry  *prometheus.Registry
	stream    *stream.Stream
	guard     *strip.Guard
	interp    *command.Interpreter
	srv       *server.Server
	transport transport.Transport
}

func newApp(cfg *config.Config, log zerolog.Logger) *app {
	return &app{cfg: cfg, log: log, open: openDriver}
}

func (a *app) start(ctx context.Context) error {
	a.bus = bus.New()
	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.bus.Subscribe(metrics.New(a.registry).Observe)

	drv, err := a.open(a.cfg.Strip)
	if err != nil {
		return fmt.Errorf("open %s strip: %w", a.cfg.Strip.Driver, err)
	}
	a.guard = strip.NewGuard(drv)
	a.log.Info().
		Str("driver", a.cfg.Strip.Driver).
		Int("length", drv.Len()).
		Msg("Strip ready")

	a.interp = command.NewInterpreter(a.guard, command.Colors{
		On:  a.cfg.Strip.OnColor.Color,
		Off: a.cfg.Strip.OffColor.Color,
	}, logging.Component(a.log, "command"), a.bus)

	switch a.cfg.Transport.Kind {
	case config.TransportBLE:
		p, err := ble.New(bluetooth.DefaultAdapter, ble.Options{
			Name:               a.cfg.Transport.Name,
			ServiceUUID:        a.cfg.Transport.ServiceUUID,
			CharacteristicUUID: a.cfg.Transport.CharacteristicUUID,
		}, logging.Component(a.log, "ble"), a.bus)
		if err != nil {
			return err
		}
		a.transport = p
	case config.TransportWS:
		a.transport = wsock.New(logging.Component(a.log, "ws"), a.bus)
	default:
		return fmt.Errorf("unknown transport %q", a.cfg.Transport.Kind)
	}

	if a.cfg.HTTP.Addr != "" {
		a.stream = stream.New(logging.Component(a.log, "diag"))
		a.bus.Subscribe(a.stream.Push)

		a.srv = server.New(a.cfg.HTTP.Addr, server.Info{
			Length:    drv.Len(),
			Driver:    a.cfg.Strip.Driver,
			Transport: a.cfg.Transport.Kind,
		}, logging.Component(a.log, "http"))
		a.srv.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		a.srv.Handle("/diag", a.stream)
		if ws, ok := a.transport.(*wsock.Server); ok {
			a.srv.Handle("/command", ws)
		}
		if err := a.srv.Start(); err != nil {
			return err
		}
	}

	if err := a.transport.Start(ctx, a.interp); err != nil {
		return fmt.Errorf("start %s transport: %w", a.cfg.Transport.Kind, err)
	}
	return nil
}

func (a *app) stop() {
	if a.transport != nil {
		if err := a.transport.Stop(); err != nil {
			a.log.Warn().Err(err).Msg("transport stop")
		}
	}
	if a.srv != nil {
		_ = a.srv.Close()
	}
	if a.stream != nil {
		a.stream.Close()
	}
	if a.guard != nil {
		if err := a.guard.Close(); err != nil {
			a.log.Warn().Err(err).Msg("strip close")
		}
	}
	if a.bus != nil {
		a.bus.Close()
	}
}
