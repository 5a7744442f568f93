// Package selector picks the physical device and queue family used to
// present to a window surface.
package selector

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
)

var ErrNoSuitableDevice = errors.New("no suitable physical device found")

type QueueFamily struct {
	Flags      core1_0.QueueFlags
	QueueCount int
}

// Candidate is a snapshot of everything selection needs to know about a
// single physical device.
type Candidate struct {
	Device            core1_0.PhysicalDevice
	Name              string
	Type              core1_0.PhysicalDeviceType
	PipelineCacheUUID uuid.UUID

	Extensions    map[string]struct{}
	QueueFamilies []QueueFamily

	// SupportsPresent reports whether the queue family at the given index
	// can present to the target surface.
	SupportsPresent func(queueFamilyIndex int) (bool, error)
}

type Selection struct {
	Candidate        Candidate
	QueueFamilyIndex int
}

// Rank orders device classes, lower is preferred.
func Rank(deviceType core1_0.PhysicalDeviceType) int {
	switch deviceType {
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return 0
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return 1
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return 2
	case core1_0.PhysicalDeviceTypeCPU:
		return 3
	case core1_0.PhysicalDeviceTypeOther:
		return 4
	}

	return 5
}

func (c *Candidate) hasExtensions(required []string) bool {
	for _, extension := range required {
		_, hasExtension := c.Extensions[extension]
		if !hasExtension {
			return false
		}
	}

	return true
}

// presentQueueFamily returns the first queue family that supports graphics
// and can present, or -1.
func (c *Candidate) presentQueueFamily() int {
	for queueFamilyIdx, queueFamily := range c.QueueFamilies {
		if (queueFamily.Flags & core1_0.QueueGraphics) == 0 {
			continue
		}

		if c.SupportsPresent == nil {
			continue
		}

		supported, err := c.SupportsPresent(queueFamilyIdx)
		if err != nil {
			log.WithFields(log.Fields{
				"device":      c.Name,
				"queueFamily": queueFamilyIdx,
			}).WithError(err).Debug("surface support query failed")
			continue
		}

		if supported {
			return queueFamilyIdx
		}
	}

	return -1
}

// Select filters candidates down to those exposing every required
// extension and a graphics queue family able to present, then returns the
// one with the best device class. Ties go to the earliest candidate.
func Select(candidates []Candidate, required []string) (Selection, error) {
	var best Selection
	found := false

	for _, candidate := range candidates {
		if !candidate.hasExtensions(required) {
			continue
		}

		queueFamilyIdx := candidate.presentQueueFamily()
		if queueFamilyIdx < 0 {
			continue
		}

		if found && Rank(candidate.Type) >= Rank(best.Candidate.Type) {
			continue
		}

		best = Selection{
			Candidate:        candidate,
			QueueFamilyIndex: queueFamilyIdx,
		}
		found = true
	}

	if !found {
		return Selection{}, errors.Wrapf(ErrNoSuitableDevice, "%d candidates considered", len(candidates))
	}

	return best, nil
}
