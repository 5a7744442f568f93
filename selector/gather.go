package selector

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"golang.org/x/sync/errgroup"
)

// Gather builds a Candidate for every physical device. Devices are queried
// concurrently; the result keeps enumeration order.
func Gather(ctx context.Context, instanceDriver core1_0.CoreInstanceDriver, surfaceExtension khr_surface.ExtensionDriver, surface khr_surface.Surface, devices []core1_0.PhysicalDevice) ([]Candidate, error) {
	candidates := make([]Candidate, len(devices))

	group, ctx := errgroup.WithContext(ctx)
	for deviceIdx, device := range devices {
		deviceIdx, device := deviceIdx, device
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			candidate, err := describeDevice(instanceDriver, surfaceExtension, surface, device)
			if err != nil {
				return errors.Wrapf(err, "query physical device %d", deviceIdx)
			}

			candidates[deviceIdx] = candidate
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return candidates, nil
}

func describeDevice(instanceDriver core1_0.CoreInstanceDriver, surfaceExtension khr_surface.ExtensionDriver, surface khr_surface.Surface, device core1_0.PhysicalDevice) (Candidate, error) {
	properties, err := instanceDriver.GetPhysicalDeviceProperties(device)
	if err != nil {
		return Candidate{}, err
	}

	extensions, _, err := instanceDriver.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return Candidate{}, err
	}

	candidate := Candidate{
		Device:            device,
		Name:              properties.DriverName,
		Type:              properties.DriverType,
		PipelineCacheUUID: properties.PipelineCacheUUID,
		Extensions:        make(map[string]struct{}, len(extensions)),
	}

	for extensionName := range extensions {
		candidate.Extensions[extensionName] = struct{}{}
	}

	for _, queueFamily := range instanceDriver.GetPhysicalDeviceQueueFamilyProperties(device) {
		candidate.QueueFamilies = append(candidate.QueueFamilies, QueueFamily{
			Flags:      queueFamily.QueueFlags,
			QueueCount: int(queueFamily.QueueCount),
		})
	}

	candidate.SupportsPresent = func(queueFamilyIndex int) (bool, error) {
		supported, _, err := surfaceExtension.GetPhysicalDeviceSurfaceSupport(surface, device, queueFamilyIndex)
		return supported, err
	}

	return candidate, nil
}
