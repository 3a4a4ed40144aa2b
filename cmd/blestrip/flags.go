package main

import (
	"github.com/spf13/pflag"

	"github.com/coreman2200/blestrip/internal/config"
)

// applyFlags copies every flag that was set on the command line into cfg.
// Flags left at their defaults never override the file.
func applyFlags(cfg *config.Config, f *pflag.FlagSet) error {
	var err error
	f.Visit(func(fl *pflag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "driver":
			cfg.Strip.Driver, err = f.GetString(fl.Name)
		case "length":
			cfg.Strip.Length, err = f.GetInt(fl.Name)
		case "channel":
			cfg.Strip.Channel, err = f.GetString(fl.Name)
		case "pin":
			cfg.Strip.Pin, err = f.GetInt(fl.Name)
		case "transport":
			cfg.Transport.Kind, err = f.GetString(fl.Name)
		case "name":
			cfg.Transport.Name, err = f.GetString(fl.Name)
		case "addr":
			cfg.HTTP.Addr, err = f.GetString(fl.Name)
		case "log-level":
			cfg.Log.Level, err = f.GetString(fl.Name)
		}
	})
	return err
}
