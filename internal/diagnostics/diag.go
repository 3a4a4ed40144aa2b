package diagnostics

import "time"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the command path and the transports.
const (
	CommandOn      = "COMMAND.ON"
	CommandOff     = "COMMAND.OFF"
	CommandUnknown = "COMMAND.UNKNOWN"
	CommandDecode  = "COMMAND.DECODE"
	StripFault     = "STRIP.FAULT"
	LinkConnect    = "LINK.CONNECT"
	LinkDisconnect = "LINK.DISCONNECT"
)

// Evidence keys with a fixed meaning.
const (
	EvidenceWriteSeconds = "write_s"
	EvidencePeer         = "peer"
	EvidenceTransport    = "transport"
)

// TypeDiagnostic identifies Diagnostic on the event bus.
const TypeDiagnostic uint32 = 1

type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
	Time     time.Time      `json:"time"`
}

func (d Diagnostic) Type() uint32 { return TypeDiagnostic }

// Reporter receives diagnostics. Implementations must be safe for concurrent use.
type Reporter interface {
	Report(d Diagnostic)
}

type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})
