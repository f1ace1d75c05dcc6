package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// VulkanFramebuffer binds concrete attachment views to a render pass.
type VulkanFramebuffer struct {
	Handle      vk.Framebuffer
	Attachments []vk.ImageView
	Width       uint32
	Height      uint32
}

// NewVulkanFramebuffer creates a framebuffer over the given views, sized
// to the attachments.
func NewVulkanFramebuffer(context *VulkanContext, renderpass *VulkanRenderpass, width, height uint32, attachments []vk.ImageView) (*VulkanFramebuffer, error) {
	views := make([]vk.ImageView, len(attachments))
	copy(views, attachments)

	createInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderpass.Handle,
		AttachmentCount: uint32(len(views)),
		PAttachments:    views,
		Width:           width,
		Height:          height,
		Layers:          1,
	}

	var handle vk.Framebuffer
	if res := vk.CreateFramebuffer(context.LogicalDevice, &createInfo, context.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create framebuffer: %s", resultString(res))
	}
	return &VulkanFramebuffer{
		Handle:      handle,
		Attachments: views,
		Width:       width,
		Height:      height,
	}, nil
}

// Destroy releases the framebuffer.
func (fb *VulkanFramebuffer) Destroy(context *VulkanContext) {
	vk.DestroyFramebuffer(context.LogicalDevice, fb.Handle, context.Allocator)
	fb.Handle = nil
	fb.Attachments = nil
}
