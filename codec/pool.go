package codec

import (
	"bytes"
	"io"
	"sync"
)

// Pool limit to prevent memory bloat
const poolMaxBufCap = 1 << 20 // 1 MiB

// scratch buffer pool for Marshal
var bufPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func getBuf() *bytes.Buffer {
	return bufPool.Get().(*bytes.Buffer)
}

func putBuf(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > poolMaxBufCap {
		return // reject oversized
	}
	buf.Reset()
	bufPool.Put(buf)
}

// offset reader pool for Decode and DecodeFrom
var readerPool = sync.Pool{
	New: func() any {
		return &offsetReader{}
	},
}

func getReader(src io.Reader) *offsetReader {
	r := readerPool.Get().(*offsetReader)
	r.Reset(src)
	return r
}

func putReader(r *offsetReader) {
	if r == nil {
		return
	}
	r.Reset(nil) // drop the source reference
	readerPool.Put(r)
}
