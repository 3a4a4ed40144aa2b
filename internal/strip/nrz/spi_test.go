package nrz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/blestrip/internal/pixel"
	"github.com/coreman2200/blestrip/internal/strip"
)

func newRecorded(t *testing.T, n int) (*SPI, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	s, err := New(spitest.NewRecordRaw(buf), n, 2500*physic.KiloHertz)
	require.NoError(t, err)
	return s, buf
}

func TestSPI_String(t *testing.T) {
	s, _ := newRecorded(t, 10)
	assert.Equal(t, "nrzled{recordraw}", s.String())
	assert.Equal(t, 10, s.Len())
}

func TestSPI_WriteFrame(t *testing.T) {
	s, buf := newRecorded(t, 10)
	require.NoError(t, s.WriteBlocking(pixel.Fill(pixel.White, 10).Encode()))
	assert.NotZero(t, buf.Len())
}

func TestSPI_WriteWrongLength(t *testing.T) {
	s, buf := newRecorded(t, 10)
	err := s.WriteBlocking(make([]byte, 27))
	assert.ErrorIs(t, err, strip.ErrFrameLength)
	assert.Zero(t, buf.Len())
}

func TestSPI_WriteAfterClose(t *testing.T) {
	s, _ := newRecorded(t, 4)
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.WriteBlocking(make([]byte, 12)), strip.ErrClosed)
	assert.NoError(t, s.Close())
	assert.Equal(t, "nrz{closed}", s.String())
}

func TestSPI_TransferFailureIsHardwareFault(t *testing.T) {
	port := &spitest.Playback{Playback: conntest.Playback{DontPanic: true}}
	s, err := New(port, 2, 0)
	require.NoError(t, err)

	err = s.WriteBlocking(pixel.Fill(pixel.White, 2).Encode())
	assert.ErrorIs(t, err, strip.ErrHardwareFault)
}

func TestSPI_InvalidCount(t *testing.T) {
	_, err := New(spitest.NewRecordRaw(&bytes.Buffer{}), 0, 0)
	assert.Error(t, err)
}

func TestGRBToRGB(t *testing.T) {
	enc := pixel.Frame{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}.Encode()
	dst := make([]byte, len(enc))
	grbToRGB(dst, enc)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, dst)
}
