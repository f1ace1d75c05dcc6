package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// passEncoder records one render pass onto a single use command buffer
// and submits it on End.
type passEncoder struct {
	backend     *Backend
	renderpass  *VulkanRenderpass
	framebuffer *VulkanFramebuffer
	cb          *VulkanCommandBuffer

	boundLayout vk.PipelineLayout
}

// BeginPass implements renderer.ResourceContext. The attachments are
// resolved from the graph slots; the framebuffer lives only for this
// pass, UI framebuffers change whenever the window resizes anyway.
func (b *Backend) BeginPass(desc metadata.PassDescriptor, attachments map[metadata.AttachmentSlot]metadata.TextureID) (renderer.PassEncoder, error) {
	rp, err := b.ensureRenderpass(desc)
	if err != nil {
		return nil, err
	}

	var views []vk.ImageView
	var width, height uint32
	for _, color := range desc.ColorAttachments {
		img, ok := b.images[attachments[color.Slot]]
		if !ok {
			return nil, fmt.Errorf("pass color slot %q has no texture", color.Slot)
		}
		views = append(views, img.View)
		width, height = img.Width, img.Height
	}
	if desc.DepthStencil != nil {
		img, ok := b.images[attachments[desc.DepthStencil.Slot]]
		if !ok {
			return nil, fmt.Errorf("pass depth slot %q has no texture", desc.DepthStencil.Slot)
		}
		views = append(views, img.View)
	}

	fb, err := NewVulkanFramebuffer(b.context, rp, width, height, views)
	if err != nil {
		return nil, err
	}

	cb, err := AllocateAndBeginSingleUse(b.context, b.context.GraphicsCommandPool)
	if err != nil {
		fb.Destroy(b.context)
		return nil, err
	}

	clearValues := make([]vk.ClearValue, 0, len(views))
	for _, color := range desc.ColorAttachments {
		var clear vk.ClearValue
		clear.SetColor(color.ClearTo[:])
		clearValues = append(clearValues, clear)
	}
	if desc.DepthStencil != nil {
		var clear vk.ClearValue
		clear.SetDepthStencil(desc.DepthStencil.ClearDepth, 0)
		clearValues = append(clearValues, clear)
	}

	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  rp.Handle,
		Framebuffer: fb.Handle,
		RenderArea: vk.Rect2D{
			Extent: vk.Extent2D{Width: width, Height: height},
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(cb.Handle, &beginInfo, vk.SubpassContentsInline)

	viewport := vk.Viewport{
		Width:    float32(width),
		Height:   float32(height),
		MaxDepth: 1.0,
	}
	vk.CmdSetViewport(cb.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(cb.Handle, 0, 1, []vk.Rect2D{{
		Extent: vk.Extent2D{Width: width, Height: height},
	}})

	return &passEncoder{
		backend:     b,
		renderpass:  rp,
		framebuffer: fb,
		cb:          cb,
	}, nil
}

// SetPipeline implements renderer.PassEncoder.
func (e *passEncoder) SetPipeline(handle metadata.PipelineHandle, desc *metadata.PipelineDescriptor) error {
	pipeline, err := e.backend.ensurePipeline(handle, desc, e.renderpass)
	if err != nil {
		return err
	}
	vk.CmdBindPipeline(e.cb.Handle, vk.PipelineBindPointGraphics, pipeline.Handle)
	e.boundLayout = pipeline.PipelineLayout
	return nil
}

// SetPushConstants implements renderer.PassEncoder. The bound pipeline's
// layout must carry a vertex stage range at least this large.
func (e *passEncoder) SetPushConstants(data []byte) {
	if len(data) == 0 {
		return
	}
	vk.CmdPushConstants(e.cb.Handle, e.boundLayout,
		vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0, uint32(len(data)), unsafe.Pointer(&data[0]))
}

// SetVertexBuffer implements renderer.PassEncoder. Unknown buffers are a
// recording bug upstream.
func (e *passEncoder) SetVertexBuffer(slot uint32, buffer metadata.BufferID, offset uint64) {
	vb, ok := e.backend.buffers[buffer]
	if !ok {
		panic(fmt.Sprintf("vulkan: vertex buffer %d does not exist", buffer))
	}
	vk.CmdBindVertexBuffers(e.cb.Handle, slot, 1, []vk.Buffer{vb.Handle}, []vk.DeviceSize{vk.DeviceSize(offset)})
}

// SetBindGroup implements renderer.PassEncoder.
func (e *passEncoder) SetBindGroup(index uint32, group metadata.BindGroupID) {
	set, ok := e.backend.bindGroups[group]
	if !ok {
		panic(fmt.Sprintf("vulkan: bind group %d does not exist", group))
	}
	vk.CmdBindDescriptorSets(e.cb.Handle, vk.PipelineBindPointGraphics, e.boundLayout,
		index, 1, []vk.DescriptorSet{set}, 0, nil)
}

// SetScissor implements renderer.PassEncoder.
func (e *passEncoder) SetScissor(x, y, width, height uint32) {
	vk.CmdSetScissor(e.cb.Handle, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: int32(x), Y: int32(y)},
		Extent: vk.Extent2D{Width: width, Height: height},
	}})
}

// Draw implements renderer.PassEncoder.
func (e *passEncoder) Draw(firstVertex, vertexCount uint32) {
	vk.CmdDraw(e.cb.Handle, vertexCount, 1, firstVertex, 0)
}

// End implements renderer.PassEncoder: it closes the pass, submits and
// waits, then frees the transient framebuffer.
func (e *passEncoder) End() error {
	vk.CmdEndRenderPass(e.cb.Handle)
	err := e.cb.EndSingleUse(e.backend.context, e.backend.context.GraphicsCommandPool, e.backend.context.GraphicsQueue)
	e.framebuffer.Destroy(e.backend.context)
	return err
}
