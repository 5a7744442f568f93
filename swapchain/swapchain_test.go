package swapchain

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func TestRecreateZeroExtentIsNoop(t *testing.T) {
	c := qt.New(t)

	// No extension driver: any driver call would panic.
	s := &Swapchain{
		info: khr_swapchain.SwapchainCreateInfo{
			ImageExtent: core1_0.Extent2D{Width: 800, Height: 600},
		},
	}

	for _, extent := range []core1_0.Extent2D{
		{Width: 0, Height: 0},
		{Width: 0, Height: 600},
		{Width: 800, Height: 0},
	} {
		recreated, err := s.Recreate(extent)
		c.Assert(err, qt.IsNil)
		c.Assert(recreated, qt.IsFalse)
		c.Assert(s.Extent(), qt.Equals, core1_0.Extent2D{Width: 800, Height: 600})
	}
}

func TestChooseSurfaceFormat(t *testing.T) {
	c := qt.New(t)

	_, err := ChooseSurfaceFormat(nil)
	c.Assert(err, qt.ErrorMatches, "surface reports no formats")

	first := khr_surface.SurfaceFormat{Format: core1_0.FormatR8G8B8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	srgb := khr_surface.SurfaceFormat{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}

	format, err := ChooseSurfaceFormat([]khr_surface.SurfaceFormat{first})
	c.Assert(err, qt.IsNil)
	c.Assert(format, qt.Equals, first)

	format, err = ChooseSurfaceFormat([]khr_surface.SurfaceFormat{first, srgb})
	c.Assert(err, qt.IsNil)
	c.Assert(format, qt.Equals, srgb)
}

func TestChoosePresentMode(t *testing.T) {
	c := qt.New(t)

	available := []khr_surface.PresentMode{khr_surface.PresentModeFIFO, khr_surface.PresentModeMailbox}
	c.Assert(ChoosePresentMode(available, khr_surface.PresentModeMailbox), qt.Equals, khr_surface.PresentModeMailbox)
	c.Assert(ChoosePresentMode(available, khr_surface.PresentModeImmediate), qt.Equals, khr_surface.PresentModeFIFO)
	c.Assert(ChoosePresentMode(nil, khr_surface.PresentModeMailbox), qt.Equals, khr_surface.PresentModeFIFO)
}

func TestParsePresentMode(t *testing.T) {
	c := qt.New(t)

	presentMode, err := ParsePresentMode("mailbox")
	c.Assert(err, qt.IsNil)
	c.Assert(presentMode, qt.Equals, khr_surface.PresentModeMailbox)

	_, err = ParsePresentMode("vsync")
	c.Assert(err, qt.ErrorMatches, `unknown present mode "vsync"`)
}

func TestPresentModeNames(t *testing.T) {
	c := qt.New(t)

	names := PresentModeNames()
	c.Assert(names, qt.DeepEquals, []string{"fifo", "mailbox", "immediate", "fifo-relaxed"})
	for _, name := range names {
		_, err := ParsePresentMode(name)
		c.Check(err, qt.IsNil, qt.Commentf("%s", name))
	}
}

func TestChooseExtent(t *testing.T) {
	c := qt.New(t)

	capabilities := &khr_surface.SurfaceCapabilities{
		CurrentExtent:  core1_0.Extent2D{Width: 1024, Height: 768},
		MinImageExtent: core1_0.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 4096},
	}
	c.Assert(ChooseExtent(capabilities, core1_0.Extent2D{Width: 10, Height: 10}), qt.Equals, core1_0.Extent2D{Width: 1024, Height: 768})

	capabilities.CurrentExtent = core1_0.Extent2D{Width: -1, Height: -1}
	c.Assert(ChooseExtent(capabilities, core1_0.Extent2D{Width: 800, Height: 600}), qt.Equals, core1_0.Extent2D{Width: 800, Height: 600})
	c.Assert(ChooseExtent(capabilities, core1_0.Extent2D{Width: 8000, Height: 0}), qt.Equals, core1_0.Extent2D{Width: 4096, Height: 1})

	capabilities.CurrentExtent = core1_0.Extent2D{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF}
	c.Assert(ChooseExtent(capabilities, core1_0.Extent2D{Width: 640, Height: 480}), qt.Equals, core1_0.Extent2D{Width: 640, Height: 480})

	capabilities.CurrentExtent = core1_0.Extent2D{}
	c.Assert(ChooseExtent(capabilities, core1_0.Extent2D{Width: 800, Height: 600}), qt.Equals, core1_0.Extent2D{})
}

func TestChooseCompositeAlpha(t *testing.T) {
	c := qt.New(t)

	compositeAlpha, err := ChooseCompositeAlpha(khr_surface.CompositeAlphaInherit | khr_surface.CompositeAlphaPreMultiplied)
	c.Assert(err, qt.IsNil)
	c.Assert(compositeAlpha, qt.Equals, khr_surface.CompositeAlphaPreMultiplied)

	_, err = ChooseCompositeAlpha(0)
	c.Assert(err, qt.IsNotNil)
}

func TestIsZero(t *testing.T) {
	c := qt.New(t)

	c.Assert(IsZero(core1_0.Extent2D{}), qt.IsTrue)
	c.Assert(IsZero(core1_0.Extent2D{Width: 1, Height: 0}), qt.IsTrue)
	c.Assert(IsZero(core1_0.Extent2D{Width: 1, Height: 1}), qt.IsFalse)
}
