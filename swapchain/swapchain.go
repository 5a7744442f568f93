package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

var ErrRecreation = errors.New("swapchain recreation failed")

type Swapchain struct {
	extension khr_swapchain.ExtensionDriver
	handle    khr_swapchain.Swapchain
	info      khr_swapchain.SwapchainCreateInfo
	images    []core1_0.Image
}

// Create builds a swapchain for surface from previously queried support
// details. drawable is the window's drawable size, used only when the
// surface leaves the extent up to the swapchain.
func Create(extension khr_swapchain.ExtensionDriver, surface khr_surface.Surface, support SupportDetails, drawable core1_0.Extent2D, preferredPresentMode khr_surface.PresentMode) (*Swapchain, error) {
	surfaceFormat, err := ChooseSurfaceFormat(support.Formats)
	if err != nil {
		return nil, err
	}

	compositeAlpha, err := ChooseCompositeAlpha(support.Capabilities.SupportedCompositeAlpha)
	if err != nil {
		return nil, err
	}

	s := &Swapchain{extension: extension}
	info := khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    ImageCount(support.Capabilities),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      ChooseExtent(support.Capabilities, drawable),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode: core1_0.SharingModeExclusive,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: compositeAlpha,
		PresentMode:    ChoosePresentMode(support.PresentModes, preferredPresentMode),
		Clipped:        true,
	}

	if IsZero(info.ImageExtent) {
		return nil, errors.Newf("cannot create swapchain with extent %dx%d", info.ImageExtent.Width, info.ImageExtent.Height)
	}

	err = s.build(info)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"format":      s.info.ImageFormat,
		"presentMode": s.info.PresentMode,
		"width":       s.info.ImageExtent.Width,
		"height":      s.info.ImageExtent.Height,
		"images":      len(s.images),
	}).Info("swapchain created")

	return s, nil
}

// build creates a swapchain from info. The current handle and images
// are only replaced once both calls succeed.
func (s *Swapchain) build(info khr_swapchain.SwapchainCreateInfo) error {
	handle, _, err := s.extension.CreateSwapchain(nil, info)
	if err != nil {
		return errors.Wrap(err, "create swapchain")
	}

	images, _, err := s.extension.GetSwapchainImages(handle)
	if err != nil {
		s.extension.DestroySwapchain(handle, nil)
		return errors.Wrap(err, "get swapchain images")
	}

	s.handle = handle
	s.images = images
	s.info = info
	return nil
}

// Recreate replaces the swapchain with one of the given extent, handing
// the current one to the driver as OldSwapchain. A zero-area extent is a
// no-op and reports false. On failure the current swapchain is kept.
// The device must be idle.
func (s *Swapchain) Recreate(extent core1_0.Extent2D) (bool, error) {
	if IsZero(extent) {
		return false, nil
	}

	start := hrtime.Now()

	old := s.handle
	info := s.info
	info.ImageExtent = extent
	info.OldSwapchain = old

	err := s.build(info)
	if err != nil {
		return false, errors.Mark(err, ErrRecreation)
	}

	s.info.OldSwapchain = khr_swapchain.Swapchain{}
	if old.Initialized() {
		s.extension.DestroySwapchain(old, nil)
	}

	log.WithFields(log.Fields{
		"width":    extent.Width,
		"height":   extent.Height,
		"duration": hrtime.Since(start),
	}).Debug("swapchain recreated")

	return true, nil
}

func (s *Swapchain) Destroy() {
	if s.handle.Initialized() {
		s.extension.DestroySwapchain(s.handle, nil)
		s.handle = khr_swapchain.Swapchain{}
	}
	s.images = nil
}

func (s *Swapchain) Handle() khr_swapchain.Swapchain {
	return s.handle
}

func (s *Swapchain) Images() []core1_0.Image {
	return s.images
}

func (s *Swapchain) Extent() core1_0.Extent2D {
	return s.info.ImageExtent
}

func (s *Swapchain) Format() core1_0.Format {
	return s.info.ImageFormat
}
