package command

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrDecode is returned by Parse for payloads that are not valid UTF-8.
var ErrDecode = errors.New("command: payload is not valid UTF-8")

type Kind uint8

const (
	Unrecognized Kind = iota
	TurnOn
	TurnOff
)

func (k Kind) String() string {
	switch k {
	case TurnOn:
		return "on"
	case TurnOff:
		return "off"
	default:
		return "unrecognized"
	}
}

// Command is one decoded inbound payload. Raw holds the decoded text before trimming.
type Command struct {
	Kind Kind
	Raw  string
}

// Parse decodes payload and matches the trimmed text, case-sensitively,
// against "on" and "off".
func Parse(payload []byte) (Command, error) {
	if !utf8.Valid(payload) {
		return Command{}, ErrDecode
	}
	raw := string(payload)
	switch strings.TrimSpace(raw) {
	case "on":
		return Command{Kind: TurnOn, Raw: raw}, nil
	case "off":
		return Command{Kind: TurnOff, Raw: raw}, nil
	default:
		return Command{Kind: Unrecognized, Raw: raw}, nil
	}
}
