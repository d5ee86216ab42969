package xorsplit

import (
	"sync"
)

// ChunkSize is the block size every stream is read and written in.
const ChunkSize = 64 * 1024 // 64KiB

// bufferPool provides reusable chunk-sized buffers.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, ChunkSize)

		return &buf
	},
}

// getBuffers takes n chunk buffers from the pool. The returned func gives them back.
func getBuffers(n int) ([][]byte, func()) {
	ptrs := make([]*[]byte, n)
	bufs := make([][]byte, n)

	for i := range ptrs {
		ptr, ok := bufferPool.Get().(*[]byte)
		if !ok {
			buf := make([]byte, ChunkSize)
			ptr = &buf
		}

		ptrs[i] = ptr
		bufs[i] = *ptr
	}

	return bufs, func() {
		for _, ptr := range ptrs {
			bufferPool.Put(ptr)
		}
	}
}
