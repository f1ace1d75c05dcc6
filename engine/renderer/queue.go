package renderer

import (
	"sync"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// copyBufferToTexture is one recorded buffer-to-texture transfer.
type copyBufferToTexture struct {
	src         metadata.BufferID
	srcOffset   uint64
	bytesPerRow uint32
	dst         metadata.TextureID
	origin      [3]uint32
	size        metadata.Extent3D
	// release the staging buffer once the copy executed
	releaseSrc bool
}

// CommandQueue records resource transfer operations during the update
// phase; the owning graph node executes them right before its pass runs.
type CommandQueue struct {
	mu     sync.Mutex
	copies []copyBufferToTexture
}

// NewCommandQueue returns an empty queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// CopyBufferToTexture records a transfer of pixel rows from a staging
// buffer into a texture region. The staging buffer is released after the
// copy executes.
func (q *CommandQueue) CopyBufferToTexture(src metadata.BufferID, srcOffset uint64, bytesPerRow uint32, dst metadata.TextureID, origin [3]uint32, size metadata.Extent3D) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.copies = append(q.copies, copyBufferToTexture{
		src:         src,
		srcOffset:   srcOffset,
		bytesPerRow: bytesPerRow,
		dst:         dst,
		origin:      origin,
		size:        size,
		releaseSrc:  true,
	})
}

// Execute runs all recorded operations in order and clears the queue.
// The first failing operation aborts the rest; already released staging
// buffers stay released.
func (q *CommandQueue) Execute(ctx ResourceContext) error {
	q.mu.Lock()
	copies := q.copies
	q.copies = nil
	q.mu.Unlock()

	for _, op := range copies {
		err := ctx.CopyBufferToTexture(op.src, op.srcOffset, op.bytesPerRow, op.dst, op.origin, op.size)
		if op.releaseSrc {
			ctx.RemoveBuffer(op.src)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Len reports how many operations are pending.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.copies)
}
