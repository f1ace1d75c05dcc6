package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// maxBindGroups sizes the descriptor pool; one set per live texture
// binding.
const maxBindGroups = 1024

// Backend implements the renderer resource context on Vulkan. All state
// is touched from the render thread only.
type Backend struct {
	context *VulkanContext

	nextID     uint64
	buffers    map[metadata.BufferID]*VulkanBuffer
	images     map[metadata.TextureID]*VulkanImage
	samplers   map[metadata.SamplerID]vk.Sampler
	bindGroups map[metadata.BindGroupID]vk.DescriptorSet

	descriptorPool vk.DescriptorPool
	setLayout      vk.DescriptorSetLayout

	renderpasses map[renderpassKey]*VulkanRenderpass
	pipelines    map[metadata.PipelineHandle]*VulkanPipeline
}

// renderpassKey identifies a compatible render pass: same load ops, same
// depth presence.
type renderpassKey struct {
	colorLoad metadata.LoadOp
	hasDepth  bool
	depthLoad metadata.LoadOp
}

// NewBackend builds the backend around a bootstrapped device context. It
// creates the shared descriptor pool and the texture+sampler set layout.
func NewBackend(context *VulkanContext) (*Backend, error) {
	b := &Backend{
		context:      context,
		buffers:      make(map[metadata.BufferID]*VulkanBuffer),
		images:       make(map[metadata.TextureID]*VulkanImage),
		samplers:     make(map[metadata.SamplerID]vk.Sampler),
		bindGroups:   make(map[metadata.BindGroupID]vk.DescriptorSet),
		renderpasses: make(map[renderpassKey]*VulkanRenderpass),
		pipelines:    make(map[metadata.PipelineHandle]*VulkanPipeline),
	}

	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings: []vk.DescriptorSetLayoutBinding{{
			Binding:         0,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		}},
	}
	if res := vk.CreateDescriptorSetLayout(context.LogicalDevice, &layoutInfo, context.Allocator, &b.setLayout); res != vk.Success {
		return nil, fmt.Errorf("failed to create descriptor set layout: %s", resultString(res))
	}

	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:   vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:   vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		MaxSets: maxBindGroups,
		PoolSizeCount: 1,
		PPoolSizes: []vk.DescriptorPoolSize{{
			Type:            vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: maxBindGroups,
		}},
	}
	if res := vk.CreateDescriptorPool(context.LogicalDevice, &poolInfo, context.Allocator, &b.descriptorPool); res != vk.Success {
		vk.DestroyDescriptorSetLayout(context.LogicalDevice, b.setLayout, context.Allocator)
		return nil, fmt.Errorf("failed to create descriptor pool: %s", resultString(res))
	}
	return b, nil
}

func (b *Backend) allocateID() uint64 {
	b.nextID++
	return b.nextID
}

// CreateBufferWithData implements renderer.ResourceContext.
func (b *Backend) CreateBufferWithData(info metadata.BufferInfo, data []byte) (metadata.BufferID, error) {
	buffer, err := NewVulkanBufferWithData(b.context, info, data)
	if err != nil {
		return 0, err
	}
	id := metadata.BufferID(b.allocateID())
	b.buffers[id] = buffer
	return id, nil
}

// RemoveBuffer implements renderer.ResourceContext.
func (b *Backend) RemoveBuffer(buffer metadata.BufferID) {
	vb, ok := b.buffers[buffer]
	if !ok {
		return
	}
	delete(b.buffers, buffer)
	vb.Destroy(b.context)
}

// CreateTexture implements renderer.ResourceContext.
func (b *Backend) CreateTexture(desc metadata.TextureDescriptor) (metadata.TextureID, error) {
	image, err := NewVulkanImage(b.context, desc)
	if err != nil {
		return 0, err
	}
	id := metadata.TextureID(b.allocateID())
	b.images[id] = image
	return id, nil
}

// RemoveTexture implements renderer.ResourceContext.
func (b *Backend) RemoveTexture(texture metadata.TextureID) {
	img, ok := b.images[texture]
	if !ok {
		return
	}
	delete(b.images, texture)
	img.Destroy(b.context)
}

// CreateSampler implements renderer.ResourceContext.
func (b *Backend) CreateSampler(desc metadata.SamplerDescriptor) (metadata.SamplerID, error) {
	filter := func(mode metadata.FilterMode) vk.Filter {
		if mode == metadata.FilterNearest {
			return vk.FilterNearest
		}
		return vk.FilterLinear
	}

	createInfo := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MinFilter:    filter(desc.MinFilter),
		MagFilter:    filter(desc.MagFilter),
		AddressModeU: vk.SamplerAddressModeClampToEdge,
		AddressModeV: vk.SamplerAddressModeClampToEdge,
		AddressModeW: vk.SamplerAddressModeClampToEdge,
		MipmapMode:   vk.SamplerMipmapModeNearest,
	}

	var sampler vk.Sampler
	if res := vk.CreateSampler(b.context.LogicalDevice, &createInfo, b.context.Allocator, &sampler); res != vk.Success {
		return 0, fmt.Errorf("failed to create sampler: %s", resultString(res))
	}
	id := metadata.SamplerID(b.allocateID())
	b.samplers[id] = sampler
	return id, nil
}

// CreateBindGroup implements renderer.ResourceContext. The descriptor set
// is written once; textures are immutable after upload.
func (b *Backend) CreateBindGroup(texture metadata.TextureID, sampler metadata.SamplerID) (metadata.BindGroupID, error) {
	img, ok := b.images[texture]
	if !ok {
		return 0, fmt.Errorf("bind group references unknown texture %d", texture)
	}
	smp, ok := b.samplers[sampler]
	if !ok {
		return 0, fmt.Errorf("bind group references unknown sampler %d", sampler)
	}

	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     b.descriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{b.setLayout},
	}

	sets := make([]vk.DescriptorSet, 1)
	if res := vk.AllocateDescriptorSets(b.context.LogicalDevice, &allocateInfo, &sets[0]); res != vk.Success {
		return 0, fmt.Errorf("failed to allocate descriptor set: %s", resultString(res))
	}

	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          sets[0],
		DstBinding:      0,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		PImageInfo: []vk.DescriptorImageInfo{{
			Sampler:     smp,
			ImageView:   img.View,
			ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
		}},
	}
	vk.UpdateDescriptorSets(b.context.LogicalDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)

	id := metadata.BindGroupID(b.allocateID())
	b.bindGroups[id] = sets[0]
	return id, nil
}

// CopyBufferToTexture implements renderer.ResourceContext. The copy runs
// on a single use command buffer and waits for completion, leaving the
// image shader readable.
func (b *Backend) CopyBufferToTexture(src metadata.BufferID, srcOffset uint64, bytesPerRow uint32, dst metadata.TextureID, origin [3]uint32, size metadata.Extent3D) error {
	buffer, ok := b.buffers[src]
	if !ok {
		return fmt.Errorf("copy references unknown buffer %d", src)
	}
	img, ok := b.images[dst]
	if !ok {
		return fmt.Errorf("copy references unknown texture %d", dst)
	}

	cb, err := AllocateAndBeginSingleUse(b.context, b.context.GraphicsCommandPool)
	if err != nil {
		return err
	}

	img.TransitionLayout(cb.Handle, img.Layout, vk.ImageLayoutTransferDstOptimal)

	// BufferRowLength counts texels, not bytes.
	region := vk.BufferImageCopy{
		BufferOffset:    vk.DeviceSize(srcOffset),
		BufferRowLength: bytesPerRow / 4,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageOffset: vk.Offset3D{X: int32(origin[0]), Y: int32(origin[1]), Z: int32(origin[2])},
		ImageExtent: vk.Extent3D{Width: size.Width, Height: size.Height, Depth: 1},
	}
	vk.CmdCopyBufferToImage(cb.Handle, buffer.Handle, img.Handle, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})

	img.TransitionLayout(cb.Handle, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)

	return cb.EndSingleUse(b.context, b.context.GraphicsCommandPool, b.context.GraphicsQueue)
}

// ensureRenderpass returns the cached render pass compatible with desc,
// compiling it on first use.
func (b *Backend) ensureRenderpass(desc metadata.PassDescriptor) (*VulkanRenderpass, error) {
	key := renderpassKey{}
	if len(desc.ColorAttachments) > 0 {
		key.colorLoad = desc.ColorAttachments[0].Load
	}
	if desc.DepthStencil != nil {
		key.hasDepth = true
		key.depthLoad = desc.DepthStencil.Load
	}
	if rp, ok := b.renderpasses[key]; ok {
		return rp, nil
	}

	rp, err := NewVulkanRenderpass(b.context, desc, vk.FormatB8g8r8a8Srgb, vk.FormatD32Sfloat)
	if err != nil {
		return nil, err
	}
	b.renderpasses[key] = rp
	return rp, nil
}

// ensurePipeline compiles the pipeline for handle against rp on first use.
func (b *Backend) ensurePipeline(handle metadata.PipelineHandle, desc *metadata.PipelineDescriptor, rp *VulkanRenderpass) (*VulkanPipeline, error) {
	if p, ok := b.pipelines[handle]; ok {
		return p, nil
	}
	p, err := NewGraphicsPipeline(b.context, desc, rp, b.setLayout)
	if err != nil {
		return nil, err
	}
	b.pipelines[handle] = p
	core.LogDebug("vulkan: compiled pipeline %q", handle)
	return p, nil
}

// Shutdown releases every resource the backend still tracks.
func (b *Backend) Shutdown() {
	device := b.context.LogicalDevice
	vk.DeviceWaitIdle(device)

	for id, buffer := range b.buffers {
		buffer.Destroy(b.context)
		delete(b.buffers, id)
	}
	for id, img := range b.images {
		img.Destroy(b.context)
		delete(b.images, id)
	}
	for id, sampler := range b.samplers {
		vk.DestroySampler(device, sampler, b.context.Allocator)
		delete(b.samplers, id)
	}
	for key, rp := range b.renderpasses {
		rp.Destroy(b.context)
		delete(b.renderpasses, key)
	}
	for handle, pipeline := range b.pipelines {
		pipeline.Destroy(b.context)
		delete(b.pipelines, handle)
	}
	vk.DestroyDescriptorPool(device, b.descriptorPool, b.context.Allocator)
	vk.DestroyDescriptorSetLayout(device, b.setLayout, b.context.Allocator)
}

var _ renderer.ResourceContext = (*Backend)(nil)
