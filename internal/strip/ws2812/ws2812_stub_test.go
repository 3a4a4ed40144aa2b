//go:build !tinygo

package ws2812

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/blestrip/internal/strip"
)

func TestOpenRequiresTinyGo(t *testing.T) {
	s, err := Open(48, 10)
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestStubWriteIsHardwareFault(t *testing.T) {
	var s Strip
	assert.ErrorIs(t, s.WriteBlocking(make([]byte, 3)), strip.ErrHardwareFault)
}
