package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// VulkanBuffer is one device buffer with its backing memory.
type VulkanBuffer struct {
	Handle vk.Buffer
	Memory vk.DeviceMemory
	Size   int
}

func bufferUsageFlags(usage metadata.BufferUsage) vk.BufferUsageFlags {
	var flags vk.BufferUsageFlags
	if usage&metadata.BufferUsageVertex != 0 {
		flags |= vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)
	}
	if usage&metadata.BufferUsageIndex != 0 {
		flags |= vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)
	}
	if usage&metadata.BufferUsageCopySrc != 0 {
		flags |= vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit)
	}
	if usage&metadata.BufferUsageUniform != 0 {
		flags |= vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit)
	}
	return flags
}

// NewVulkanBufferWithData allocates a host visible buffer and copies data
// into it. Host visible coherent memory keeps the upload path simple;
// widget geometry is rewritten most frames anyway.
func NewVulkanBufferWithData(context *VulkanContext, info metadata.BufferInfo, data []byte) (*VulkanBuffer, error) {
	createInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(info.Size),
		Usage:       bufferUsageFlags(info.Usage),
		SharingMode: vk.SharingModeExclusive,
	}

	var buffer vk.Buffer
	if res := vk.CreateBuffer(context.LogicalDevice, &createInfo, context.Allocator, &buffer); res != vk.Success {
		return nil, fmt.Errorf("failed to create buffer: %s", resultString(res))
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(context.LogicalDevice, buffer, &requirements)
	requirements.Deref()

	memoryIndex := context.FindMemoryIndex(requirements.MemoryTypeBits,
		uint32(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if memoryIndex < 0 {
		vk.DestroyBuffer(context.LogicalDevice, buffer, context.Allocator)
		return nil, fmt.Errorf("no host visible memory for buffer")
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}

	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(context.LogicalDevice, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		vk.DestroyBuffer(context.LogicalDevice, buffer, context.Allocator)
		return nil, fmt.Errorf("failed to allocate buffer memory: %s", resultString(res))
	}
	if res := vk.BindBufferMemory(context.LogicalDevice, buffer, memory, 0); res != vk.Success {
		vk.FreeMemory(context.LogicalDevice, memory, context.Allocator)
		vk.DestroyBuffer(context.LogicalDevice, buffer, context.Allocator)
		return nil, fmt.Errorf("failed to bind buffer memory: %s", resultString(res))
	}

	if len(data) > 0 {
		var ptr unsafe.Pointer
		if res := vk.MapMemory(context.LogicalDevice, memory, 0, vk.DeviceSize(len(data)), 0, &ptr); res != vk.Success {
			vk.FreeMemory(context.LogicalDevice, memory, context.Allocator)
			vk.DestroyBuffer(context.LogicalDevice, buffer, context.Allocator)
			return nil, fmt.Errorf("failed to map buffer memory: %s", resultString(res))
		}
		vk.Memcopy(ptr, data)
		vk.UnmapMemory(context.LogicalDevice, memory)
	}

	return &VulkanBuffer{Handle: buffer, Memory: memory, Size: info.Size}, nil
}

// Destroy releases the buffer and its memory.
func (b *VulkanBuffer) Destroy(context *VulkanContext) {
	vk.DestroyBuffer(context.LogicalDevice, b.Handle, context.Allocator)
	vk.FreeMemory(context.LogicalDevice, b.Memory, context.Allocator)
	b.Handle = nil
	b.Memory = nil
}
