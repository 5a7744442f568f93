package app

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

// instanceExtensions resolves the extensions the window needs plus the
// optional ones the loader offers. Missing window extensions are fatal.
func instanceExtensions(window []string, available map[string]*core1_0.ExtensionProperties, validation bool) ([]string, core1_0.InstanceCreateFlags, error) {
	var flags core1_0.InstanceCreateFlags
	names := make([]string, 0, len(window)+2)

	for _, name := range window {
		if _, ok := available[name]; !ok {
			return nil, 0, errors.Newf("window requires missing instance extension %s", name)
		}
		names = append(names, name)
	}

	if validation {
		names = append(names, ext_debug_utils.ExtensionName)
	}

	if _, ok := available[khr_portability_enumeration.ExtensionName]; ok {
		names = append(names, khr_portability_enumeration.ExtensionName)
		flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	return names, flags, nil
}

func instanceLayers(available map[string]*core1_0.LayerProperties) ([]string, error) {
	for _, layer := range validationLayers {
		if _, ok := available[layer]; !ok {
			return nil, errors.Newf("validation layer %s not available", layer)
		}
	}
	return validationLayers, nil
}

func (app *Application) createInstance() error {
	available, _, err := app.globalDriver.AvailableExtensions()
	if err != nil {
		return errors.Wrap(err, "list instance extensions")
	}

	extensionNames, flags, err := instanceExtensions(app.window.VulkanGetInstanceExtensions(), available, app.config.Validation)
	if err != nil {
		return err
	}

	info := core1_0.InstanceCreateInfo{
		Flags:                 flags,
		ApplicationName:       app.config.Title,
		ApplicationVersion:    common.CreateVersion(0, 1, 0),
		EngineName:            app.config.EngineName,
		EngineVersion:         common.CreateVersion(0, 1, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: extensionNames,
	}

	if app.config.Validation {
		layers, _, err := app.globalDriver.AvailableLayers()
		if err != nil {
			return errors.Wrap(err, "list instance layers")
		}

		info.EnabledLayerNames, err = instanceLayers(layers)
		if err != nil {
			return err
		}

		// Covers messages emitted during vkCreateInstance itself
		info.Next = app.debugMessengerOptions()
	}

	instance, _, err := app.globalDriver.CreateInstance(nil, info)
	if err != nil {
		return err
	}

	app.instanceDriver, err = app.globalDriver.BuildInstanceDriver(instance)
	if err != nil {
		return errors.Wrap(err, "load instance functions")
	}

	log.WithFields(log.Fields{
		"extensions": info.EnabledExtensionNames,
		"layers":     info.EnabledLayerNames,
	}).Debug("instance created")

	return nil
}

func (app *Application) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    app.logDebug,
	}
}

func (app *Application) setupDebugMessenger() error {
	if !app.config.Validation {
		return nil
	}

	var err error
	app.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(app.instanceDriver)
	app.debugMessenger, _, err = app.debugDriver.CreateDebugUtilsMessenger(nil, app.debugMessengerOptions())
	if err != nil {
		return err
	}

	return nil
}

func (app *Application) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	entry := log.WithField("type", msgType)

	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		entry.Error(data.Message)
	case severity&ext_debug_utils.SeverityWarning != 0:
		entry.Warn(data.Message)
	case severity&ext_debug_utils.SeverityInfo != 0:
		entry.Info(data.Message)
	default:
		entry.Debug(data.Message)
	}

	return false
}
