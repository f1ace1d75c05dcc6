package vulkan

import (
	"encoding/binary"
	"fmt"
	"os"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// VulkanPipeline holds a compiled graphics pipeline and its layout.
type VulkanPipeline struct {
	Handle         vk.Pipeline
	PipelineLayout vk.PipelineLayout
}

func vertexFormat(format metadata.VertexFormat) vk.Format {
	switch format {
	case metadata.VertexFormatFloat32x4:
		return vk.FormatR32g32b32a32Sfloat
	case metadata.VertexFormatUint32:
		return vk.FormatR32Uint
	default:
		return vk.FormatR32g32Sfloat
	}
}

func blendFactor(factor metadata.BlendFactor) vk.BlendFactor {
	switch factor {
	case metadata.BlendOne:
		return vk.BlendFactorOne
	case metadata.BlendSrcAlpha:
		return vk.BlendFactorSrcAlpha
	case metadata.BlendOneMinusSrcAlpha:
		return vk.BlendFactorOneMinusSrcAlpha
	default:
		return vk.BlendFactorZero
	}
}

func cullMode(mode metadata.FaceCullMode) vk.CullModeFlags {
	switch mode {
	case metadata.CullNone:
		return vk.CullModeFlags(vk.CullModeNone)
	case metadata.CullFront:
		return vk.CullModeFlags(vk.CullModeFrontBit)
	default:
		return vk.CullModeFlags(vk.CullModeBackBit)
	}
}

func compareOp(fn metadata.CompareFunction) vk.CompareOp {
	switch fn {
	case metadata.CompareLess:
		return vk.CompareOpLess
	case metadata.CompareLessEqual:
		return vk.CompareOpLessOrEqual
	default:
		return vk.CompareOpAlways
	}
}

// loadShaderModule reads a SPIR-V file and wraps it in a shader module.
func loadShaderModule(context *VulkanContext, path string) (vk.ShaderModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", path, err)
	}
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("shader %s: invalid SPIR-V size %d", path, len(data))
	}

	code := make([]uint32, len(data)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    code,
	}

	var module vk.ShaderModule
	if res := vk.CreateShaderModule(context.LogicalDevice, &createInfo, context.Allocator, &module); res != vk.Success {
		return nil, fmt.Errorf("shader %s: module creation failed: %d", path, res)
	}
	return module, nil
}

// NewGraphicsPipeline compiles a pipeline descriptor against a render
// pass. Viewport and scissor are dynamic so one pipeline serves any
// framebuffer size.
func NewGraphicsPipeline(context *VulkanContext, desc *metadata.PipelineDescriptor, renderpass *VulkanRenderpass, setLayout vk.DescriptorSetLayout) (*VulkanPipeline, error) {
	vertModule, err := loadShaderModule(context, desc.Shaders.Vertex)
	if err != nil {
		return nil, err
	}
	defer vk.DestroyShaderModule(context.LogicalDevice, vertModule, context.Allocator)

	fragModule, err := loadShaderModule(context, desc.Shaders.Fragment)
	if err != nil {
		return nil, err
	}
	defer vk.DestroyShaderModule(context.LogicalDevice, fragModule, context.Allocator)

	stages := []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vertModule,
			PName:  safeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: fragModule,
			PName:  safeString("main"),
		},
	}

	attributes := make([]vk.VertexInputAttributeDescription, len(desc.VertexLayout.Attributes))
	for i, attr := range desc.VertexLayout.Attributes {
		attributes[i] = vk.VertexInputAttributeDescription{
			Location: attr.ShaderLocation,
			Binding:  0,
			Format:   vertexFormat(attr.Format),
			Offset:   attr.Offset,
		}
	}

	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions: []vk.VertexInputBindingDescription{{
			Binding:   0,
			Stride:    desc.VertexLayout.Stride,
			InputRate: vk.VertexInputRateVertex,
		}},
		VertexAttributeDescriptionCount: uint32(len(attributes)),
		PVertexAttributeDescriptions:    attributes,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: vk.PrimitiveTopologyTriangleList,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterizer := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		LineWidth:   1.0,
		CullMode:    cullMode(desc.CullMode),
		FrontFace:   vk.FrontFaceCounterClockwise,
	}

	multisampling := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		MinSampleShading:     1.0,
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType: vk.StructureTypePipelineDepthStencilStateCreateInfo,
	}
	if desc.DepthStencil != nil {
		depthStencil.DepthTestEnable = vk.True
		depthStencil.DepthCompareOp = compareOp(desc.DepthStencil.Compare)
		if desc.DepthStencil.WriteEnabled {
			depthStencil.DepthWriteEnable = vk.True
		}
	}

	colorBlendAttachment := vk.PipelineColorBlendAttachmentState{
		BlendEnable:         vk.True,
		SrcColorBlendFactor: blendFactor(desc.ColorBlend.SrcFactor),
		DstColorBlendFactor: blendFactor(desc.ColorBlend.DstFactor),
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: blendFactor(desc.AlphaBlend.SrcFactor),
		DstAlphaBlendFactor: blendFactor(desc.AlphaBlend.DstFactor),
		AlphaBlendOp:        vk.BlendOpAdd,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) | vk.ColorComponentFlags(vk.ColorComponentGBit) |
			vk.ColorComponentFlags(vk.ColorComponentBBit) | vk.ColorComponentFlags(vk.ColorComponentABit),
	}

	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachment},
	}

	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	layoutInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{setLayout},
	}
	if desc.PushConstantSize > 0 {
		layoutInfo.PushConstantRangeCount = 1
		layoutInfo.PPushConstantRanges = []vk.PushConstantRange{{
			StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
			Offset:     0,
			Size:       desc.PushConstantSize,
		}}
	}

	var pipelineLayout vk.PipelineLayout
	if res := vk.CreatePipelineLayout(context.LogicalDevice, &layoutInfo, context.Allocator, &pipelineLayout); res != vk.Success {
		return nil, fmt.Errorf("failed to create pipeline layout: %s", resultString(res))
	}

	createInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizer,
		PMultisampleState:   &multisampling,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamicState,
		Layout:              pipelineLayout,
		RenderPass:          renderpass.Handle,
		Subpass:             0,
	}

	pipelines := make([]vk.Pipeline, 1)
	if res := vk.CreateGraphicsPipelines(context.LogicalDevice, nil, 1,
		[]vk.GraphicsPipelineCreateInfo{createInfo}, context.Allocator, pipelines); res != vk.Success {
		vk.DestroyPipelineLayout(context.LogicalDevice, pipelineLayout, context.Allocator)
		return nil, fmt.Errorf("failed to create graphics pipeline: %s", resultString(res))
	}

	return &VulkanPipeline{Handle: pipelines[0], PipelineLayout: pipelineLayout}, nil
}

// Destroy releases the pipeline and its layout.
func (p *VulkanPipeline) Destroy(context *VulkanContext) {
	vk.DestroyPipeline(context.LogicalDevice, p.Handle, context.Allocator)
	vk.DestroyPipelineLayout(context.LogicalDevice, p.PipelineLayout, context.Allocator)
	p.Handle = nil
	p.PipelineLayout = nil
}
