//go:build tinygo

// Command blestrip-mcu is the microcontroller build: a ws2812 strip on one pin
// and a BLE peripheral accepting on/off writes.
//
//	tinygo flash -target=feather-nrf52840 -ldflags="-X main.pin=48 -X main.length=10" ./cmd/blestrip-mcu
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"tinygo.org/x/bluetooth"

	"github.com/coreman2200/blestrip/internal/command"
	"github.com/coreman2200/blestrip/internal/strip"
	"github.com/coreman2200/blestrip/internal/strip/ws2812"
	"github.com/coreman2200/blestrip/internal/transport/ble"
)

// Set with -ldflags "-X main.name=...".
var (
	pin                = "48"
	length             = "10"
	name               = "ble_esp_prazval"
	serviceUUID        = "fafafafa-fafa-fafa-fafa-fafafafafafa"
	characteristicUUID = "3c9a3f00-8ed3-4bdf-8a39-a01bebede295"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	p, err := strconv.Atoi(pin)
	if err != nil {
		log.Fatal().Err(err).Str("pin", pin).Msg("bad pin")
	}
	n, err := strconv.Atoi(length)
	if err != nil {
		log.Fatal().Err(err).Str("length", length).Msg("bad length")
	}

	drv, err := ws2812.Open(p, n)
	if err != nil {
		log.Fatal().Err(err).Msg("strip init failed")
	}
	in := command.NewInterpreter(strip.NewGuard(drv), command.DefaultColors, log, nil)

	periph, err := ble.New(bluetooth.DefaultAdapter, ble.Options{
		Name:               name,
		ServiceUUID:        serviceUUID,
		CharacteristicUUID: characteristicUUID,
	}, log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("ble options")
	}
	if err := periph.Start(context.Background(), in); err != nil {
		log.Fatal().Err(err).Msg("ble init failed")
	}

	for {
		time.Sleep(time.Second)
	}
}
