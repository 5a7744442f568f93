package app

import (
	"context"

	"github.com/halvar-engine/halvar/selector"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

var deviceExtensions = []string{khr_swapchain.ExtensionName}

func (app *Application) createSurface() error {
	app.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(app.instanceDriver)
	surface, err := vkng_sdl2.CreateSurface(app.instanceDriver.Instance(), app.surfaceExtension, app.window)
	if err != nil {
		return err
	}

	app.surface = surface
	return nil
}

func (app *Application) pickPhysicalDevice(ctx context.Context) error {
	physicalDevices, _, err := app.instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return err
	}

	candidates, err := selector.Gather(ctx, app.instanceDriver, app.surfaceExtension, app.surface, physicalDevices)
	if err != nil {
		return err
	}

	selection, err := selector.Select(candidates, deviceExtensions)
	if err != nil {
		return err
	}

	app.physicalDevice = selection.Candidate.Device
	app.queueFamilyIndex = selection.QueueFamilyIndex

	log.WithFields(log.Fields{
		"name":        selection.Candidate.Name,
		"type":        selection.Candidate.Type,
		"uuid":        selection.Candidate.PipelineCacheUUID,
		"queueFamily": selection.QueueFamilyIndex,
	}).Info("using device")

	return nil
}

func (app *Application) createLogicalDevice() error {
	var extensionNames []string
	extensionNames = append(extensionNames, deviceExtensions...)

	// Required on portability implementations such as MoltenVK
	extensions, _, err := app.instanceDriver.EnumerateDeviceExtensionProperties(app.physicalDevice)
	if err != nil {
		return err
	}

	_, supported := extensions[khr_portability_subset.ExtensionName]
	if supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, _, err := app.instanceDriver.CreateDevice(app.physicalDevice, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: app.queueFamilyIndex,
				QueuePriorities:  []float32{1.0},
			},
		},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return err
	}

	app.deviceDriver, err = app.instanceDriver.BuildDeviceDriver(device)
	if err != nil {
		return err
	}

	app.queue = app.deviceDriver.GetQueue(app.queueFamilyIndex, 0)
	return nil
}
