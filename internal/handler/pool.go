package handler

import (
	"bytes"
	"sync"
)

// Response encoding buffers. Inventory pages can be large, so buffers that
// grew past maxPooledBufferSize are dropped instead of pinned in the pool.
const (
	initialBufferSize   = 512
	maxPooledBufferSize = 64 << 10
)

var encodeBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
