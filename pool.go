package mqttwire

import "sync"

// Writer pool for the encode hot path.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{}
	},
}

// getWriter returns a pooled Writer with an empty buffer.
func getWriter() *Writer {
	w := writerPool.Get().(*Writer)
	w.buf = w.buf[:0]
	return w
}

// putWriter returns a Writer to the pool.
func putWriter(w *Writer) {
	if w == nil {
		return
	}
	// Only pool if capacity is reasonable (64KB)
	if cap(w.buf) <= 65536 {
		w.buf = w.buf[:0]
		writerPool.Put(w)
	}
}
