// Command blestrip turns an addressable LED strip on and off from text
// commands written by a BLE central (or a websocket client on a bench setup).
package main

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/blestrip/internal/config"
	"github.com/coreman2200/blestrip/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, writePath string

	cmd := &cobra.Command{
		Use:           "blestrip",
		Short:         "Drive an LED strip from on/off commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, found, err := loadConfig(configPath)
			if err != nil {
				boot, _ := logging.New(config.Log{}, os.Stdout)
				boot.Fatal().Err(err).Str("path", configPath).Msg("config load failed")
			}
			if err := applyFlags(cfg, cmd.Flags()); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log, os.Stdout)
			if err != nil {
				return err
			}
			log.Logger = logger

			if !found {
				logger.Info().Str("path", configPath).Msg("config file not found; using defaults and flags")
			}
			if err := cfg.Validate(); err != nil {
				logger.Fatal().Err(err).Msg("invalid configuration")
			}
			if writePath != "" {
				if err := config.Save(writePath, cfg); err != nil {
					return err
				}
				logger.Info().Str("path", writePath).Msg("configuration written")
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := newApp(cfg, logger)
			if err := a.start(ctx); err != nil {
				a.stop()
				logger.Fatal().Err(err).Msg("initialization failed")
			}
			<-ctx.Done()
			logger.Info().Msg("shutting down")
			a.stop()
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "config.yaml", "path to config.yaml")
	f.String("driver", "", "strip driver: spi | console | ws2812")
	f.Int("length", 0, "number of pixels on the strip")
	f.String("channel", "", "SPI port name (empty picks the first port)")
	f.Int("pin", 0, "data pin for the ws2812 driver")
	f.String("transport", "", "command transport: ble | ws")
	f.String("name", "", "BLE local name")
	f.String("addr", "", "HTTP listen address")
	f.String("log-level", "", "log level: debug | info | warn | error")
	f.StringVar(&writePath, "write-config", "", "write the effective configuration to this path and exit")
	return cmd
}

// loadConfig reads path over the defaults. A missing file is not an error:
// the defaults are returned with found set to false. Any other failure is.
func loadConfig(path string) (cfg *config.Config, found bool, err error) {
	cfg, err = config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}
