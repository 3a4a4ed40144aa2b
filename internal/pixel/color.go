package pixel

import (
	"fmt"
	"strconv"
	"strings"
)

// Channel offsets inside a packed 0xRRGGBB value.
const (
	RedOffset   uint8 = 0x10
	GreenOffset uint8 = 0x08
	BlueOffset  uint8 = 0x0
)

// Color is an 8-bit per channel RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = Color{}
)

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

// FromUint32 unpacks 0xRRGGBB. Anything above bit 23 is ignored.
func FromUint32(v uint32) Color {
	return Color{
		R: getcolor(v, RedOffset),
		G: getcolor(v, GreenOffset),
		B: getcolor(v, BlueOffset),
	}
}

// Uint32 packs the color as 0xRRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<RedOffset | uint32(c.G)<<GreenOffset | uint32(c.B)<<BlueOffset
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", c.Uint32())
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// ParseHex accepts "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("pixel: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("pixel: invalid hex color %q: %w", s, err)
	}
	return FromUint32(uint32(v)), nil
}
