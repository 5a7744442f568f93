package app

import (
	"github.com/cockroachdb/errors"
	"github.com/halvar-engine/halvar/swapchain"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func (app *Application) drawableExtent() core1_0.Extent2D {
	w, h := app.window.VulkanGetDrawableSize()
	return core1_0.Extent2D{Width: int(w), Height: int(h)}
}

func (app *Application) createSwapchain() error {
	app.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(app.deviceDriver)

	support, err := swapchain.QuerySupport(app.surfaceExtension, app.surface, app.physicalDevice)
	if err != nil {
		return err
	}

	presentMode, err := swapchain.ParsePresentMode(app.config.PresentMode)
	if err != nil {
		return err
	}

	app.swapchain, err = swapchain.Create(app.swapchainExtension, app.surface, support, app.drawableExtent(), presentMode)
	return err
}

// recreateSwapchain reports false when the surface currently has no
// area, leaving the request for a later frame.
func (app *Application) recreateSwapchain(drawable core1_0.Extent2D) (bool, error) {
	_, err := app.deviceDriver.DeviceWaitIdle()
	if err != nil {
		return false, errors.Mark(errors.Wrap(err, "wait for device idle"), swapchain.ErrRecreation)
	}

	support, err := swapchain.QuerySupport(app.surfaceExtension, app.surface, app.physicalDevice)
	if err != nil {
		return false, errors.Mark(err, swapchain.ErrRecreation)
	}

	return app.swapchain.Recreate(swapchain.ChooseExtent(support.Capabilities, drawable))
}
