package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/pixelui/engine/core"
)

// NewVulkanContext bootstraps instance, device, graphics queue and
// command pool. requiredExtensions comes from the windowing layer.
func NewVulkanContext(applicationName string, requiredExtensions []string, framebufferWidth, framebufferHeight uint32) (*VulkanContext, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan loader unavailable: %w", err)
	}

	applicationInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(applicationName),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        safeString("pixelui"),
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		ApiVersion:         vk.ApiVersion11,
	}

	// goki/vulkan passes strings to C verbatim, so terminate them.
	extensions := safeStrings(append([]string(nil), requiredExtensions...))

	instanceInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        applicationInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	var instance vk.Instance
	if res := vk.CreateInstance(instanceInfo, nil, &instance); res != vk.Success {
		return nil, fmt.Errorf("failed to create instance: %s", resultString(res))
	}
	vk.InitInstance(instance)

	physicalDevice, queueIndex, err := pickPhysicalDevice(instance)
	if err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, err
	}

	queuePriorities := []float32{1.0}
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueIndex,
		QueueCount:       1,
		PQueuePriorities: queuePriorities,
	}

	deviceInfo := &vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueInfo},
	}

	var device vk.Device
	if res := vk.CreateDevice(physicalDevice, deviceInfo, nil, &device); res != vk.Success {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("failed to create logical device: %s", resultString(res))
	}

	var queue vk.Queue
	vk.GetDeviceQueue(device, queueIndex, 0, &queue)

	poolInfo := &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: queueIndex,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var pool vk.CommandPool
	if res := vk.CreateCommandPool(device, poolInfo, nil, &pool); res != vk.Success {
		vk.DestroyDevice(device, nil)
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("failed to create command pool: %s", resultString(res))
	}

	core.LogInfo("vulkan: device ready, graphics queue family %d", queueIndex)
	return &VulkanContext{
		Instance:            instance,
		PhysicalDevice:      physicalDevice,
		LogicalDevice:       device,
		GraphicsQueue:       queue,
		GraphicsQueueIndex:  queueIndex,
		GraphicsCommandPool: pool,
		FramebufferWidth:    framebufferWidth,
		FramebufferHeight:   framebufferHeight,
	}, nil
}

// pickPhysicalDevice selects the first device with a graphics queue,
// preferring discrete GPUs.
func pickPhysicalDevice(instance vk.Instance) (vk.PhysicalDevice, uint32, error) {
	var count uint32
	if res := vk.EnumeratePhysicalDevices(instance, &count, nil); res != vk.Success || count == 0 {
		return nil, 0, fmt.Errorf("no Vulkan capable devices")
	}
	devices := make([]vk.PhysicalDevice, count)
	vk.EnumeratePhysicalDevices(instance, &count, devices)

	var fallback vk.PhysicalDevice
	var fallbackQueue uint32
	for _, device := range devices {
		queueIndex, ok := graphicsQueueFamily(device)
		if !ok {
			continue
		}

		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(device, &properties)
		properties.Deref()

		if properties.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
			return device, queueIndex, nil
		}
		if fallback == nil {
			fallback = device
			fallbackQueue = queueIndex
		}
	}
	if fallback == nil {
		return nil, 0, fmt.Errorf("no device with a graphics queue")
	}
	return fallback, fallbackQueue, nil
}

func graphicsQueueFamily(device vk.PhysicalDevice) (uint32, bool) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &count, families)

	for i := range families {
		families[i].Deref()
		if families[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			return uint32(i), true
		}
	}
	return 0, false
}

// Destroy tears down the device context in reverse creation order.
func (vc *VulkanContext) Destroy() {
	vk.DeviceWaitIdle(vc.LogicalDevice)
	vk.DestroyCommandPool(vc.LogicalDevice, vc.GraphicsCommandPool, vc.Allocator)
	vk.DestroyDevice(vc.LogicalDevice, vc.Allocator)
	vk.DestroyInstance(vc.Instance, vc.Allocator)
}
