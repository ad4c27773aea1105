package codec

import (
	"bufio"
	"io"
)

// eofReader is what pooled readers point at between uses
type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

// offsetReader feeds the msgpack decoder and tracks exactly how many bytes
// it has consumed. It implements io.Reader and io.ByteScanner so the msgpack
// layer uses it directly instead of adding its own buffer; the offset then
// reflects consumed wire bytes, not read-ahead.
//
// srcErr records the last non-EOF failure surfaced by the source, which is
// how decode errors are classified as IO rather than format.
type offsetReader struct {
	br     *bufio.Reader
	offset int64
	srcErr error
}

// Reset points the reader at a new source and zeroes the offset
func (r *offsetReader) Reset(src io.Reader) {
	if src == nil {
		src = eofReader{}
	}
	if r.br == nil {
		r.br = bufio.NewReader(src)
	} else {
		r.br.Reset(src)
	}
	r.offset = 0
	r.srcErr = nil
}

// Offset returns the number of bytes consumed so far
func (r *offsetReader) Offset() int64 {
	return r.offset
}

func (r *offsetReader) Read(p []byte) (int, error) {
	n, err := r.br.Read(p)
	r.offset += int64(n)
	if err != nil && err != io.EOF {
		r.srcErr = err
	}
	return n, err
}

func (r *offsetReader) ReadByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err == nil {
		r.offset++
	} else if err != io.EOF {
		r.srcErr = err
	}
	return b, err
}

func (r *offsetReader) UnreadByte() error {
	err := r.br.UnreadByte()
	if err == nil {
		r.offset--
	}
	return err
}
