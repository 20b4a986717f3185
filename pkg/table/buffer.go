package table

// Buffer is scratch space for materializing one cell at a time. Tree art, if
// any, is written before the cell data so its width can be recovered.
type Buffer struct {
	data []byte
	art  int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer { return &Buffer{data: make([]byte, 0, 64)} }

// Reset empties the buffer and keeps its storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.art = 0
}

// WriteArt appends branch decoration. It must precede any data.
func (b *Buffer) WriteArt(s string) {
	b.data = append(b.data[:b.art], s...)
	b.art = len(b.data)
}

// WriteString appends cell data.
func (b *Buffer) WriteString(s string) {
	b.data = append(b.data, s...)
}

// String returns art followed by data.
func (b *Buffer) String() string { return string(b.data) }

// Art returns the decoration part of the buffer.
func (b *Buffer) Art() string { return string(b.data[:b.art]) }

// Data returns the cell data without decoration.
func (b *Buffer) Data() string { return string(b.data[b.art:]) }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }
