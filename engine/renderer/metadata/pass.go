package metadata

// LoadOp selects what happens to an attachment when a pass begins.
type LoadOp uint8

const (
	// LoadOpLoad preserves the existing attachment contents. A UI pass
	// drawing over the finished scene uses this.
	LoadOpLoad LoadOp = iota
	LoadOpClear
)

// AttachmentSlot names a pass input filled with a texture at execution
// time by the render graph.
type AttachmentSlot string

// ColorAttachment describes one color target of a pass.
type ColorAttachment struct {
	Slot    AttachmentSlot
	Load    LoadOp
	Store   bool
	ClearTo [4]float32
}

// DepthStencilAttachment describes the depth target of a pass.
type DepthStencilAttachment struct {
	Slot       AttachmentSlot
	Load       LoadOp
	Store      bool
	ClearDepth float32
}

// PassDescriptor describes a render pass: its attachments and which graph
// slots provide them.
type PassDescriptor struct {
	ColorAttachments []ColorAttachment
	DepthStencil     *DepthStencilAttachment
}
