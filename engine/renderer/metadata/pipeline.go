package metadata

// PipelineHandle is the stable key a pipeline descriptor is registered
// under. Registration is idempotent per handle.
type PipelineHandle string

// PrimitiveTopology selects how vertices are assembled.
type PrimitiveTopology uint8

const (
	TopologyTriangleList PrimitiveTopology = iota
	TopologyTriangleStrip
	TopologyLineList
)

// FaceCullMode selects which triangle faces are discarded.
type FaceCullMode uint8

const (
	CullNone FaceCullMode = iota
	CullFront
	CullBack
)

// BlendFactor is a source or destination blend multiplier.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// BlendState is one blend equation (operation is always add).
type BlendState struct {
	SrcFactor BlendFactor
	DstFactor BlendFactor
}

// CompareFunction is a depth test comparison.
type CompareFunction uint8

const (
	CompareAlways CompareFunction = iota
	CompareLess
	CompareLessEqual
)

// DepthStencilState describes depth testing against a shared depth buffer.
type DepthStencilState struct {
	Format       TextureFormat
	WriteEnabled bool
	Compare      CompareFunction
}

// VertexFormat is the type of one vertex attribute.
type VertexFormat uint8

const (
	VertexFormatFloat32x2 VertexFormat = iota
	VertexFormatFloat32x4
	VertexFormatUint32
)

// VertexAttribute is one entry of a vertex buffer layout.
type VertexAttribute struct {
	Name           string
	Offset         uint64
	Format         VertexFormat
	ShaderLocation uint32
}

// VertexLayout describes the packing of one vertex buffer.
type VertexLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

// ShaderStages names the shader files a pipeline is built from.
type ShaderStages struct {
	Vertex   string
	Fragment string
}

// PipelineDescriptor fully describes a render pipeline. Backends compile
// it into their native pipeline object on first use.
type PipelineDescriptor struct {
	Topology     PrimitiveTopology
	CullMode     FaceCullMode
	ColorFormat  TextureFormat
	ColorBlend   BlendState
	AlphaBlend   BlendState
	DepthStencil *DepthStencilState
	VertexLayout VertexLayout
	Shaders      ShaderStages

	// PushConstantSize reserves a vertex stage push constant range of
	// that many bytes in the pipeline layout. Zero means none.
	PushConstantSize uint32
}
