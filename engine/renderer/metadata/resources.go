// Package metadata holds the plain data types shared across the renderer
// boundary: resource handles, descriptors and render commands. It has no
// behavior so both the frontend systems and the backends can depend on it.
package metadata

// InvalidID marks an unassigned resource slot.
const InvalidID uint32 = 0xFFFFFFFF

// Opaque handles for backend owned GPU resources. Zero is never a valid
// handle.
type (
	BufferID    uint64
	TextureID   uint64
	SamplerID   uint64
	BindGroupID uint64
)

// BufferUsage describes what a buffer will be used for.
type BufferUsage uint8

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageCopySrc
	BufferUsageUniform
)

// BufferInfo describes a buffer allocation.
type BufferInfo struct {
	Size  int
	Usage BufferUsage
}

// Extent3D is a texture size in texels.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// TextureFormat is the texel format of a texture.
type TextureFormat uint8

const (
	TextureFormatRGBA8Unorm TextureFormat = iota
	TextureFormatBGRA8UnormSrgb
	TextureFormatDepth32Float
)

// BytesPerTexel returns the packed byte size of one texel.
func (f TextureFormat) BytesPerTexel() uint32 {
	switch f {
	case TextureFormatDepth32Float:
		return 4
	default:
		return 4
	}
}

// TextureDescriptor describes a sampled texture allocation.
type TextureDescriptor struct {
	Size   Extent3D
	Format TextureFormat
}

// FilterMode selects how a sampler interpolates.
type FilterMode uint8

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	MinFilter FilterMode
	MagFilter FilterMode
}

// RowAlignment is the byte alignment GPU copies require for each texture
// row. Uploads pad their rows to a multiple of this.
const RowAlignment = 256

// AlignRow returns rowBytes padded up to the next RowAlignment multiple.
func AlignRow(rowBytes uint32) uint32 {
	return (rowBytes + RowAlignment - 1) &^ (RowAlignment - 1)
}
