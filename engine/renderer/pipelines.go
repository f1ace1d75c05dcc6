package renderer

import (
	"sync"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// PipelineRegistry holds pipeline descriptors by stable handle. Set is
// presence checked so repeated plugin registration never duplicates a
// pipeline.
type PipelineRegistry struct {
	mu        sync.RWMutex
	pipelines map[metadata.PipelineHandle]*metadata.PipelineDescriptor
}

// NewPipelineRegistry returns an empty registry.
func NewPipelineRegistry() *PipelineRegistry {
	return &PipelineRegistry{
		pipelines: make(map[metadata.PipelineHandle]*metadata.PipelineDescriptor),
	}
}

// Set registers a descriptor under handle. Returns false when the handle
// is already taken; the existing descriptor is kept.
func (r *PipelineRegistry) Set(handle metadata.PipelineHandle, desc *metadata.PipelineDescriptor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pipelines[handle]; exists {
		return false
	}
	r.pipelines[handle] = desc
	return true
}

// Get returns the descriptor registered under handle, or nil.
func (r *PipelineRegistry) Get(handle metadata.PipelineHandle) *metadata.PipelineDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pipelines[handle]
}
