package main

import (
	"fmt"

	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/blestrip/internal/config"
	"github.com/coreman2200/blestrip/internal/strip"
	"github.com/coreman2200/blestrip/internal/strip/console"
	"github.com/coreman2200/blestrip/internal/strip/nrz"
	"github.com/coreman2200/blestrip/internal/strip/ws2812"
)

func openDriver(c config.Strip) (strip.Driver, error) {
	switch c.Driver {
	case config.DriverSPI:
		d, err := nrz.Open(c.Channel, c.Length, physic.Frequency(c.FreqKHz)*physic.KiloHertz)
		if err != nil {
			return nil, err
		}
		return d, nil
	case config.DriverConsole:
		d, err := console.New(c.Length)
		if err != nil {
			return nil, err
		}
		return d, nil
	case config.DriverWS2812:
		d, err := ws2812.Open(c.Pin, c.Length)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown strip driver %q", c.Driver)
}
