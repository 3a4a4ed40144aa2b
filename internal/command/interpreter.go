// Package command turns inbound transport payloads into strip writes.
package command

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/blestrip/internal/diagnostics"
	"github.com/coreman2200/blestrip/internal/pixel"
	"github.com/coreman2200/blestrip/internal/strip"
)

// Colors maps the two commands to the frame color they fill the strip with.
type Colors struct {
	On  pixel.Color
	Off pixel.Color
}

var DefaultColors = Colors{On: pixel.White, Off: pixel.Black}

// Interpreter is the handler the transports call for every inbound payload.
// It holds no state between calls; the guard is the only shared resource.
type Interpreter struct {
	guard  *strip.Guard
	colors Colors
	log    zerolog.Logger
	diag   diagnostics.Reporter
}

func NewInterpreter(g *strip.Guard, colors Colors, log zerolog.Logger, diag diagnostics.Reporter) *Interpreter {
	if diag == nil {
		diag = diagnostics.Discard
	}
	return &Interpreter{guard: g, colors: colors, log: log, diag: diag}
}

// Handle decodes and executes one payload. Errors never escape: they are
// logged and reported as diagnostics.
func (in *Interpreter) Handle(payload []byte) {
	cmd, err := Parse(payload)
	if err != nil {
		in.log.Debug().Int("len", len(payload)).Msg("Dropping payload that is not valid UTF-8")
		in.diag.Report(diagnostics.Diagnostic{
			Severity: diagnostics.Warn,
			Code:     diagnostics.CommandDecode,
			Summary:  "Payload is not valid UTF-8",
			Evidence: map[string]any{"len": len(payload)},
		})
		return
	}
	_ = in.Execute(cmd)
}

// Execute performs cmd. It returns the hardware error, if any, after
// logging and reporting it; Unrecognized commands return nil.
func (in *Interpreter) Execute(cmd Command) error {
	var (
		c       pixel.Color
		code    string
		summary string
	)
	switch cmd.Kind {
	case TurnOn:
		c, code, summary = in.colors.On, diagnostics.CommandOn, "On"
	case TurnOff:
		c, code, summary = in.colors.Off, diagnostics.CommandOff, "Off"
	default:
		in.log.Info().Str("command", cmd.Raw).Msg("Unknown command")
		in.diag.Report(diagnostics.Diagnostic{
			Severity: diagnostics.Info,
			Code:     diagnostics.CommandUnknown,
			Summary:  "Unknown command",
			Detail:   cmd.Raw,
		})
		return nil
	}

	enc := pixel.Fill(c, in.guard.Len()).Encode()
	start := time.Now()
	err := in.guard.WithExclusiveAccess(func(d strip.Driver) error {
		return d.WriteBlocking(enc)
	})
	elapsed := time.Since(start)

	if err != nil {
		in.log.Error().Err(err).Str("command", cmd.Kind.String()).Msg("Strip write failed")
		in.diag.Report(diagnostics.Diagnostic{
			Severity: diagnostics.Err,
			Code:     diagnostics.StripFault,
			Summary:  "Strip write failed",
			Detail:   err.Error(),
			Evidence: map[string]any{"command": cmd.Kind.String()},
		})
		return fmt.Errorf("command %s: %w", cmd.Kind, err)
	}

	in.log.Info().Str("color", c.Hex()).Dur("write", elapsed).Msg(summary)
	in.diag.Report(diagnostics.Diagnostic{
		Severity: diagnostics.Info,
		Code:     code,
		Summary:  summary,
		Evidence: map[string]any{diagnostics.EvidenceWriteSeconds: elapsed.Seconds()},
	})
	return nil
}
