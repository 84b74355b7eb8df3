package handler

import (
	"bytes"
	"sync"
)

// bufferPool reuses encode buffers across responses. Outcome tables can run
// to tens of thousands of rows, so the initial capacity is generous.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
