// Package vulkan is the Vulkan implementation of the renderer's resource
// context: buffers, sampled textures, descriptor based bind groups and a
// render pass encoder driven by the recorded command stream.
package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/core"
)

// VulkanContext carries the device level handles every resource operation
// needs. The host bootstrap fills it once at startup.
type VulkanContext struct {
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	LogicalDevice  vk.Device
	Allocator      *vk.AllocationCallbacks

	GraphicsQueue       vk.Queue
	GraphicsQueueIndex  uint32
	GraphicsCommandPool vk.CommandPool

	FramebufferWidth  uint32
	FramebufferHeight uint32
}

// FindMemoryIndex returns the index of a memory type matching typeFilter
// and the wanted property flags, or -1 when the device has none.
func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		memoryProperties.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	core.LogWarn("vulkan: no suitable memory type for filter %#x props %#x", typeFilter, propertyFlags)
	return -1
}
