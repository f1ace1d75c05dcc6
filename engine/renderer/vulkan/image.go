package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// VulkanImage is one sampled image with its memory and default view.
type VulkanImage struct {
	Handle vk.Image
	Memory vk.DeviceMemory
	View   vk.ImageView
	Width  uint32
	Height uint32
	Format vk.Format
	Layout vk.ImageLayout
}

func textureFormat(format metadata.TextureFormat) vk.Format {
	switch format {
	case metadata.TextureFormatBGRA8UnormSrgb:
		return vk.FormatB8g8r8a8Srgb
	case metadata.TextureFormatDepth32Float:
		return vk.FormatD32Sfloat
	default:
		return vk.FormatR8g8b8a8Unorm
	}
}

// imageUsage derives what an image of this format is for: depth formats
// become depth attachments, color formats are sampled upload targets that
// can also serve as color attachments.
func imageUsage(format metadata.TextureFormat) vk.ImageUsageFlags {
	if format == metadata.TextureFormatDepth32Float {
		return vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit)
	}
	return vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit | vk.ImageUsageColorAttachmentBit)
}

func imageAspect(format metadata.TextureFormat) vk.ImageAspectFlags {
	if format == metadata.TextureFormatDepth32Float {
		return vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	}
	return vk.ImageAspectFlags(vk.ImageAspectColorBit)
}

// NewVulkanImage allocates a device local image with its default view.
// Color images can be sampled and written by transfers; depth images are
// attachment only.
func NewVulkanImage(context *VulkanContext, desc metadata.TextureDescriptor) (*VulkanImage, error) {
	format := textureFormat(desc.Format)

	createInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    format,
		Extent: vk.Extent3D{
			Width:  desc.Size.Width,
			Height: desc.Size.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         imageUsage(desc.Format),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var image vk.Image
	if res := vk.CreateImage(context.LogicalDevice, &createInfo, context.Allocator, &image); res != vk.Success {
		return nil, fmt.Errorf("failed to create image: %s", resultString(res))
	}

	var requirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(context.LogicalDevice, image, &requirements)
	requirements.Deref()

	memoryIndex := context.FindMemoryIndex(requirements.MemoryTypeBits,
		uint32(vk.MemoryPropertyDeviceLocalBit))
	if memoryIndex < 0 {
		vk.DestroyImage(context.LogicalDevice, image, context.Allocator)
		return nil, fmt.Errorf("no device local memory for image")
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}

	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(context.LogicalDevice, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		vk.DestroyImage(context.LogicalDevice, image, context.Allocator)
		return nil, fmt.Errorf("failed to allocate image memory: %s", resultString(res))
	}
	if res := vk.BindImageMemory(context.LogicalDevice, image, memory, 0); res != vk.Success {
		vk.FreeMemory(context.LogicalDevice, memory, context.Allocator)
		vk.DestroyImage(context.LogicalDevice, image, context.Allocator)
		return nil, fmt.Errorf("failed to bind image memory: %s", resultString(res))
	}

	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: imageAspect(desc.Format),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	if res := vk.CreateImageView(context.LogicalDevice, &viewInfo, context.Allocator, &view); res != vk.Success {
		vk.FreeMemory(context.LogicalDevice, memory, context.Allocator)
		vk.DestroyImage(context.LogicalDevice, image, context.Allocator)
		return nil, fmt.Errorf("failed to create image view: %s", resultString(res))
	}

	return &VulkanImage{
		Handle: image,
		Memory: memory,
		View:   view,
		Width:  desc.Size.Width,
		Height: desc.Size.Height,
		Format: format,
		Layout: vk.ImageLayoutUndefined,
	}, nil
}

// TransitionLayout records a pipeline barrier moving the image between
// layouts.
func (img *VulkanImage) TransitionLayout(commandBuffer vk.CommandBuffer, oldLayout, newLayout vk.ImageLayout) {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.Handle,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var srcStage, dstStage vk.PipelineStageFlags
	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		barrier.SrcAccessMask = 0
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	case oldLayout == vk.ImageLayoutShaderReadOnlyOptimal && newLayout == vk.ImageLayoutTransferDstOptimal:
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	default:
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	}

	vk.CmdPipelineBarrier(commandBuffer, srcStage, dstStage, 0,
		0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	img.Layout = newLayout
}

// Destroy releases the view, image and memory.
func (img *VulkanImage) Destroy(context *VulkanContext) {
	vk.DestroyImageView(context.LogicalDevice, img.View, context.Allocator)
	vk.DestroyImage(context.LogicalDevice, img.Handle, context.Allocator)
	vk.FreeMemory(context.LogicalDevice, img.Memory, context.Allocator)
	img.View = nil
	img.Handle = nil
	img.Memory = nil
}
