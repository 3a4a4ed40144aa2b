// Package ble exposes the command handler as a writable GATT characteristic.
package ble

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"tinygo.org/x/bluetooth"

	"github.com/coreman2200/blestrip/internal/diagnostics"
	"github.com/coreman2200/blestrip/internal/transport"
)

type Options struct {
	// Name is the advertised local name.
	Name               string
	ServiceUUID        string
	CharacteristicUUID string
}

// Peripheral advertises one service with one write characteristic. Every
// write is handed to the Handler as a payload.
type Peripheral struct {
	adapter *bluetooth.Adapter
	name    string
	service bluetooth.UUID
	char    bluetooth.UUID
	log     zerolog.Logger
	diag    diagnostics.Reporter

	mu      sync.Mutex
	handler transport.Handler
	adv     *bluetooth.Advertisement
	command bluetooth.Characteristic
}

func New(adapter *bluetooth.Adapter, opts Options, log zerolog.Logger, diag diagnostics.Reporter) (*Peripheral, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("ble: local name is required")
	}
	svc, err := bluetooth.ParseUUID(opts.ServiceUUID)
	if err != nil {
		return nil, fmt.Errorf("ble: service uuid %q: %w", opts.ServiceUUID, err)
	}
	chr, err := bluetooth.ParseUUID(opts.CharacteristicUUID)
	if err != nil {
		return nil, fmt.Errorf("ble: characteristic uuid %q: %w", opts.CharacteristicUUID, err)
	}
	if diag == nil {
		diag = diagnostics.Discard
	}
	return &Peripheral{
		adapter: adapter,
		name:    opts.Name,
		service: svc,
		char:    chr,
		log:     log,
		diag:    diag,
	}, nil
}

func (p *Peripheral) Start(ctx context.Context, h transport.Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.handler = h
	p.mu.Unlock()

	p.adapter.SetConnectHandler(p.onConnect)
	if err := p.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable adapter: %w", err)
	}

	err := p.adapter.AddService(&bluetooth.Service{
		UUID: p.service,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle:     &p.command,
				UUID:       p.char,
				Flags:      bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: p.onWrite,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ble: add service: %w", err)
	}

	adv := p.adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    p.name,
		ServiceUUIDs: []bluetooth.UUID{p.service},
	}); err != nil {
		return fmt.Errorf("ble: configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return fmt.Errorf("ble: start advertisement: %w", err)
	}
	p.mu.Lock()
	p.adv = adv
	p.mu.Unlock()

	p.log.Info().
		Str("name", p.name).
		Str("service", p.service.String()).
		Str("characteristic", p.char.String()).
		Msg("Advertising")
	return nil
}

func (p *Peripheral) Stop() error {
	p.mu.Lock()
	adv := p.adv
	p.adv = nil
	p.mu.Unlock()
	if adv == nil {
		return nil
	}
	if err := adv.Stop(); err != nil {
		return fmt.Errorf("ble: stop advertisement: %w", err)
	}
	return nil
}

func (p *Peripheral) onConnect(device bluetooth.Device, connected bool) {
	peer := device.Address.String()
	if connected {
		p.log.Info().Str("peer", peer).Msg("Client connected")
		p.diag.Report(diagnostics.Diagnostic{
			Severity: diagnostics.Info,
			Code:     diagnostics.LinkConnect,
			Summary:  "Client connected",
			Evidence: map[string]any{diagnostics.EvidencePeer: peer, diagnostics.EvidenceTransport: "ble"},
		})
		return
	}
	p.log.Info().Str("peer", peer).Msg("Client disconnected")
	p.diag.Report(diagnostics.Diagnostic{
		Severity: diagnostics.Info,
		Code:     diagnostics.LinkDisconnect,
		Summary:  "Client disconnected",
		Evidence: map[string]any{diagnostics.EvidencePeer: peer, diagnostics.EvidenceTransport: "ble"},
	})
}

// onWrite forwards a characteristic write. Writes at a non-zero offset are
// continuations of a long write, which no valid command needs.
func (p *Peripheral) onWrite(client bluetooth.Connection, offset int, value []byte) {
	if offset != 0 {
		p.log.Debug().Int("offset", offset).Int("len", len(value)).Msg("Ignoring write at offset")
		return
	}
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	if h == nil {
		return
	}
	h.Handle(value)
}
