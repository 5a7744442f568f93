package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

type SupportDetails struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

func QuerySupport(surfaceExtension khr_surface.ExtensionDriver, surface khr_surface.Surface, device core1_0.PhysicalDevice) (SupportDetails, error) {
	var details SupportDetails
	var err error

	details.Capabilities, _, err = surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(surface, device)
	if err != nil {
		return details, errors.Wrap(err, "query surface capabilities")
	}

	details.Formats, _, err = surfaceExtension.GetPhysicalDeviceSurfaceFormats(surface, device)
	if err != nil {
		return details, errors.Wrap(err, "query surface formats")
	}

	details.PresentModes, _, err = surfaceExtension.GetPhysicalDeviceSurfacePresentModes(surface, device)
	if err != nil {
		return details, errors.Wrap(err, "query surface present modes")
	}

	return details, nil
}

// presentModes is the single table of configurable present mode names.
var presentModes = []struct {
	name string
	mode khr_surface.PresentMode
}{
	{"fifo", khr_surface.PresentModeFIFO},
	{"mailbox", khr_surface.PresentModeMailbox},
	{"immediate", khr_surface.PresentModeImmediate},
	{"fifo-relaxed", khr_surface.PresentModeFIFORelaxed},
}

func PresentModeNames() []string {
	names := make([]string, 0, len(presentModes))
	for _, presentMode := range presentModes {
		names = append(names, presentMode.name)
	}
	return names
}

func ParsePresentMode(name string) (khr_surface.PresentMode, error) {
	for _, presentMode := range presentModes {
		if presentMode.name == name {
			return presentMode.mode, nil
		}
	}
	return khr_surface.PresentModeFIFO, errors.Newf("unknown present mode %q", name)
}

func ChooseSurfaceFormat(availableFormats []khr_surface.SurfaceFormat) (khr_surface.SurfaceFormat, error) {
	if len(availableFormats) == 0 {
		return khr_surface.SurfaceFormat{}, errors.New("surface reports no formats")
	}

	for _, format := range availableFormats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format, nil
		}
	}

	return availableFormats[0], nil
}

// ChoosePresentMode falls back to FIFO, the only mode every surface
// must support.
func ChoosePresentMode(availablePresentModes []khr_surface.PresentMode, preferred khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == preferred {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// undefinedExtent is the width a surface reports when the swapchain
// decides its own size. Widened into an int it shows up as either -1 or
// 4294967295, so compare the low 32 bits.
const undefinedExtent uint32 = 0xFFFFFFFF

func extentUndefined(extent core1_0.Extent2D) bool {
	return uint32(extent.Width) == undefinedExtent
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}

// ChooseExtent returns the surface's current extent when it has one,
// otherwise the drawable size clamped to the surface limits.
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, drawable core1_0.Extent2D) core1_0.Extent2D {
	if !extentUndefined(capabilities.CurrentExtent) {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(drawable.Width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(drawable.Height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

var compositeAlphaPreference = []khr_surface.CompositeAlphaFlags{
	khr_surface.CompositeAlphaOpaque,
	khr_surface.CompositeAlphaPreMultiplied,
	khr_surface.CompositeAlphaPostMultiplied,
	khr_surface.CompositeAlphaInherit,
}

func ChooseCompositeAlpha(supported khr_surface.CompositeAlphaFlags) (khr_surface.CompositeAlphaFlags, error) {
	for _, compositeAlpha := range compositeAlphaPreference {
		if (supported & compositeAlpha) != 0 {
			return compositeAlpha, nil
		}
	}

	return 0, errors.Newf("no supported composite alpha mode in %v", supported)
}

func ImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	return capabilities.MinImageCount
}

// IsZero reports whether the extent has no drawable area.
func IsZero(extent core1_0.Extent2D) bool {
	return extent.Width <= 0 || extent.Height <= 0
}
