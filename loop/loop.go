// Package loop holds the window event state shared by the main loop. It
// knows nothing about the windowing toolkit; callers translate toolkit
// events into Event values.
package loop

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

type Event int

const (
	EventNone Event = iota
	EventCloseRequested
	EventResized
	EventMinimized
	EventRestored
)

func (e Event) String() string {
	switch e {
	case EventCloseRequested:
		return "CloseRequested"
	case EventResized:
		return "Resized"
	case EventMinimized:
		return "Minimized"
	case EventRestored:
		return "Restored"
	}
	return "None"
}

// State is only touched from the main thread.
type State struct {
	exit              bool
	minimized         bool
	recreateSwapchain bool
}

func (s *State) Handle(event Event) {
	switch event {
	case EventCloseRequested:
		s.exit = true
	case EventResized:
		s.recreateSwapchain = true
	case EventMinimized:
		s.minimized = true
	case EventRestored:
		s.minimized = false
		s.recreateSwapchain = true
	}
}

func (s *State) Exit() bool {
	return s.exit
}

func (s *State) PendingRecreate() bool {
	return s.recreateSwapchain
}

// RedrawCleared runs once all pending events have been handled. A
// zero-area extent or a minimized window skips the frame entirely;
// otherwise a pending recreation is attempted with extent. The request
// stays pending until recreate reports that it rebuilt.
func (s *State) RedrawCleared(extent core1_0.Extent2D, recreate func(core1_0.Extent2D) (bool, error)) error {
	if extent.Width <= 0 || extent.Height <= 0 {
		return nil
	}

	if s.minimized || !s.recreateSwapchain {
		return nil
	}

	rebuilt, err := recreate(extent)
	if err != nil {
		return err
	}

	if rebuilt {
		s.recreateSwapchain = false
	}
	return nil
}
