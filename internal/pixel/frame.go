package pixel

// BytesPerPixel is the encoded size of one pixel on the wire.
const BytesPerPixel = 3

// Frame is the full target state of a strip, one Color per LED in strip order.
type Frame []Color

// Fill returns a frame of n copies of c. n <= 0 yields an empty frame.
func Fill(c Color, n int) Frame {
	if n <= 0 {
		return Frame{}
	}
	f := make(Frame, n)
	for i := range f {
		f[i] = c
	}
	return f
}

// Encode flattens the frame into the WS281x wire order: green, red, blue per pixel.
func (f Frame) Encode() []byte {
	buf := make([]byte, len(f)*BytesPerPixel)
	f.EncodeInto(buf)
	return buf
}

// EncodeInto writes the encoded frame into dst, which must hold at least
// len(f)*BytesPerPixel bytes. It returns the number of bytes written.
func (f Frame) EncodeInto(dst []byte) int {
	off := 0
	for _, c := range f {
		dst[off+0] = c.G
		dst[off+1] = c.R
		dst[off+2] = c.B
		off += BytesPerPixel
	}
	return off
}

// EncodedLen is the wire size of an n-pixel frame.
func EncodedLen(n int) int {
	return n * BytesPerPixel
}
