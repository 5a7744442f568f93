package app

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/halvar-engine/halvar/config"
	"github.com/halvar-engine/halvar/swapchain"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

var ErrInitialization = errors.New("initialization failed")

type Application struct {
	config config.Config

	window *sdl.Window

	globalDriver   core1_0.GlobalDriver
	instanceDriver core1_0.CoreInstanceDriver
	deviceDriver   core1_0.CoreDeviceDriver

	debugDriver      ext_debug_utils.ExtensionDriver
	debugMessenger   ext_debug_utils.DebugUtilsMessenger
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice   core1_0.PhysicalDevice
	queueFamilyIndex int
	queue            core1_0.Queue

	swapchainExtension khr_swapchain.ExtensionDriver
	swapchain          *swapchain.Swapchain
}

func New(cfg config.Config) *Application {
	return &Application{config: cfg}
}

// Run must be called from the thread that owns the window, normally the
// main thread locked with runtime.LockOSThread.
func (app *Application) Run(ctx context.Context) error {
	defer app.cleanup()

	err := app.initWindow()
	if err != nil {
		return errors.Mark(errors.Wrap(err, "init window"), ErrInitialization)
	}

	err = app.initVulkan(ctx)
	if err != nil {
		return errors.Mark(err, ErrInitialization)
	}

	return app.mainLoop(ctx)
}

func (app *Application) initWindow() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	window, err := sdl.CreateWindow(app.config.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(app.config.Width), int32(app.config.Height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	app.window = window

	app.globalDriver, err = core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return errors.Wrap(err, "load vulkan")
	}

	return nil
}

func (app *Application) initVulkan(ctx context.Context) error {
	start := hrtime.Now()

	steps := []struct {
		name string
		run  func() error
	}{
		{"create instance", app.createInstance},
		{"setup debug messenger", app.setupDebugMessenger},
		{"create surface", app.createSurface},
		{"pick physical device", func() error { return app.pickPhysicalDevice(ctx) }},
		{"create logical device", app.createLogicalDevice},
		{"create swapchain", app.createSwapchain},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return errors.Wrap(err, step.name)
		}
	}

	log.WithField("duration", hrtime.Since(start)).Info("vulkan initialized")
	return nil
}

func (app *Application) cleanup() {
	if app.deviceDriver != nil {
		_, err := app.deviceDriver.DeviceWaitIdle()
		if err != nil {
			log.WithError(err).Warn("wait for device idle")
		}
	}

	if app.swapchain != nil {
		app.swapchain.Destroy()
		app.swapchain = nil
	}

	if app.deviceDriver != nil {
		app.deviceDriver.DestroyDevice(nil)
		app.deviceDriver = nil
	}

	if app.debugMessenger.Initialized() {
		app.debugDriver.DestroyDebugUtilsMessenger(app.debugMessenger, nil)
		app.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if app.surface.Initialized() {
		app.surfaceExtension.DestroySurface(app.surface, nil)
		app.surface = khr_surface.Surface{}
	}

	if app.instanceDriver != nil {
		app.instanceDriver.DestroyInstance(nil)
		app.instanceDriver = nil
	}

	if app.window != nil {
		app.window.Destroy()
		app.window = nil
	}
	sdl.Quit()
}
