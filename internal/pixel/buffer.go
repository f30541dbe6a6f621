package pixel

// Buffer is a width×height RGBA frame with 8-bit channels. A buffer is owned
// by exactly one pipeline stage at a time; stages that need to read the prior
// contents while writing take a Clone first.
type Buffer struct {
	W, H int
	Pix  []uint8 // 4 bytes per pixel, row-major
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(w, h int) *Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Buffer{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// Index returns the byte offset of pixel (x, y).
func (b *Buffer) Index(x, y int) int {
	return (y*b.W + x) * 4
}

// At returns the channels of pixel (x, y).
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := b.Index(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the channels of pixel (x, y).
func (b *Buffer) Set(x, y int, r, g, bl, a uint8) {
	i := b.Index(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	cp := &Buffer{W: b.W, H: b.H, Pix: make([]uint8, len(b.Pix))}
	copy(cp.Pix, b.Pix)
	return cp
}

// CopyFrom overwrites this buffer's pixels from src. Dimensions must match.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.Pix, src.Pix)
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
		b.Pix[i+3] = a
	}
}

// Equal reports whether two buffers are byte-identical.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.W != other.W || b.H != other.H || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ClampX restricts x to the valid column range.
func (b *Buffer) ClampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= b.W {
		return b.W - 1
	}
	return x
}

// ClampY restricts y to the valid row range.
func (b *Buffer) ClampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= b.H {
		return b.H - 1
	}
	return y
}

// ReflectX mirrors x back into range at the edges.
func (b *Buffer) ReflectX(x int) int {
	return reflect(x, b.W)
}

// ReflectY mirrors y back into range at the edges.
func (b *Buffer) ReflectY(y int) int {
	return reflect(y, b.H)
}

func reflect(v, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2 * (n - 1)
	v %= period
	if v < 0 {
		v += period
	}
	if v >= n {
		v = period - v
	}
	return v
}
