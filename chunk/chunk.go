// Package chunk provides an append-only, chunked byte store. It is the sole
// storage substrate for the textual and binary accumulators built on top of
// it (strbuf.StringBuffer and message.Message); neither of those packages
// allocates backing memory of its own.
package chunk

import (
	"github.com/nimo-project/nimo/internal/pool"
)

// DefaultChunkSize bounds the size of a single underlying allocation. Bytes
// appended beyond one chunk's capacity spill into a newly allocated chunk
// rather than triggering a reallocation-and-copy of everything appended so
// far.
const DefaultChunkSize = 4096

// BufferChunk is one fixed-capacity segment of a ChunkArray.
type BufferChunk struct {
	data []byte // len(data) == used bytes, cap(data) == chunk capacity
}

func newBufferChunk(capacity int) *BufferChunk {
	return &BufferChunk{data: make([]byte, 0, capacity)}
}

func (c *BufferChunk) free() int {
	return cap(c.data) - len(c.data)
}

// append writes as much of data as fits in the chunk's remaining capacity
// and reports how many bytes it consumed.
func (c *BufferChunk) append(data []byte) int {
	n := len(data)
	if avail := c.free(); n > avail {
		n = avail
	}
	if n > 0 {
		c.data = append(c.data, data[:n]...)
	}

	return n
}

// ChunkArray is an append-only byte store realized as an ordered sequence of
// fixed-size BufferChunks. It avoids the O(n) copy a single growing slice
// would require once the backing store spans many megabytes, at the cost of
// indirection for random access.
type ChunkArray struct {
	chunks    []*BufferChunk
	chunkSize int
	size      int // total used bytes across all chunks
}

// New creates an empty ChunkArray using DefaultChunkSize chunks.
func New() *ChunkArray {
	return NewSize(DefaultChunkSize)
}

// NewSize creates an empty ChunkArray with an explicit chunk capacity.
// Mainly useful for tests that want to exercise chunk-boundary behavior
// without allocating megabytes of data.
func NewSize(chunkSize int) *ChunkArray {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &ChunkArray{chunkSize: chunkSize}
}

func (a *ChunkArray) lastChunk() *BufferChunk {
	if len(a.chunks) == 0 {
		return nil
	}

	return a.chunks[len(a.chunks)-1]
}

// AppendBytes appends all of data, allocating new chunks as needed. The only
// failure mode is memory exhaustion, which surfaces as the usual Go OOM
// panic rather than an error return.
func (a *ChunkArray) AppendBytes(data []byte) {
	for len(data) > 0 {
		last := a.lastChunk()
		if last == nil || last.free() == 0 {
			last = newBufferChunk(a.chunkSize)
			a.chunks = append(a.chunks, last)
		}

		n := last.append(data)
		a.size += n
		data = data[n:]
	}
}

// AppendByte appends a single byte.
func (a *ChunkArray) AppendByte(b byte) {
	a.AppendBytes([]byte{b})
}

// GetByte performs a random read at index, reporting atEnd if index is at or
// past the array's total size. The chunk and offset are derived from index
// via the fixed chunk size, giving O(1) amortized lookup.
func (a *ChunkArray) GetByte(index int) (value byte, atEnd bool) {
	if index < 0 || index >= a.size {
		return 0, true
	}

	chunkIdx := index / a.chunkSize
	offset := index % a.chunkSize

	return a.chunks[chunkIdx].data[offset], false
}

// Reset discards all chunks and resets size to zero.
func (a *ChunkArray) Reset() {
	a.chunks = nil
	a.size = 0
}

// Size returns the total number of bytes appended to the array.
func (a *ChunkArray) Size() int {
	return a.size
}

// GetBytes returns a materialized copy of the entire array's contents. The
// copy is built in a pooled buffer that is grown once to the array's known
// total size before the chunks are appended; the pooled buffer itself is returned to the pool before GetBytes returns, so
// callers own the result outright.
func (a *ChunkArray) GetBytes() []byte {
	if a.size == 0 {
		return nil
	}

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	buf.Grow(a.size)
	for _, c := range a.chunks {
		buf.MustWrite(c.data)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// GetRange returns a materialized copy of [start, end). Panics if the range
// is out of bounds, mirroring pool.ByteBuffer.Slice's contract.
func (a *ChunkArray) GetRange(start, end int) []byte {
	if start < 0 || end < start || end > a.size {
		panic("chunk: GetRange: invalid indices")
	}

	out := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		b, _ := a.GetByte(i)
		out = append(out, b)
	}

	return out
}
