package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// VulkanRenderpass is one compiled render pass compatible with every
// framebuffer sharing its attachment formats and load ops.
type VulkanRenderpass struct {
	Handle   vk.RenderPass
	HasDepth bool
}

func attachmentLoadOp(op metadata.LoadOp) vk.AttachmentLoadOp {
	if op == metadata.LoadOpClear {
		return vk.AttachmentLoadOpClear
	}
	return vk.AttachmentLoadOpLoad
}

func attachmentStoreOp(store bool) vk.AttachmentStoreOp {
	if store {
		return vk.AttachmentStoreOpStore
	}
	return vk.AttachmentStoreOpDontCare
}

// NewVulkanRenderpass compiles a pass descriptor into a render pass. An
// attachment loading previous contents starts in its optimal layout, a
// cleared one starts undefined.
func NewVulkanRenderpass(context *VulkanContext, desc metadata.PassDescriptor, colorFormat vk.Format, depthFormat vk.Format) (*VulkanRenderpass, error) {
	if len(desc.ColorAttachments) != 1 {
		return nil, fmt.Errorf("render pass wants exactly one color attachment, got %d", len(desc.ColorAttachments))
	}
	color := desc.ColorAttachments[0]

	attachments := []vk.AttachmentDescription{{
		Format:         colorFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         attachmentLoadOp(color.Load),
		StoreOp:        attachmentStoreOp(color.Store),
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutColorAttachmentOptimal,
		FinalLayout:    vk.ImageLayoutColorAttachmentOptimal,
	}}
	if color.Load == metadata.LoadOpClear {
		attachments[0].InitialLayout = vk.ImageLayoutUndefined
	}

	colorReference := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorReference,
	}

	hasDepth := desc.DepthStencil != nil
	if hasDepth {
		depth := vk.AttachmentDescription{
			Format:         depthFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         attachmentLoadOp(desc.DepthStencil.Load),
			StoreOp:        attachmentStoreOp(desc.DepthStencil.Store),
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutDepthStencilAttachmentOptimal,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
		if desc.DepthStencil.Load == metadata.LoadOpClear {
			depth.InitialLayout = vk.ImageLayoutUndefined
		}
		attachments = append(attachments, depth)

		subpass.PDepthStencilAttachment = &vk.AttachmentReference{
			Attachment: 1,
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}

	createInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	var handle vk.RenderPass
	if res := vk.CreateRenderPass(context.LogicalDevice, &createInfo, context.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create render pass: %s", resultString(res))
	}
	return &VulkanRenderpass{Handle: handle, HasDepth: hasDepth}, nil
}

// Destroy releases the render pass.
func (rp *VulkanRenderpass) Destroy(context *VulkanContext) {
	vk.DestroyRenderPass(context.LogicalDevice, rp.Handle, context.Allocator)
	rp.Handle = nil
}
