package app

import (
	"context"

	"github.com/halvar-engine/halvar/loop"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

// waitTimeout bounds how long the loop blocks on SDL so context
// cancellation is noticed.
const waitTimeout = 100

func translateEvent(event sdl.Event) loop.Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return loop.EventCloseRequested
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return loop.EventCloseRequested
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return loop.EventResized
		case sdl.WINDOWEVENT_MINIMIZED:
			return loop.EventMinimized
		case sdl.WINDOWEVENT_RESTORED:
			return loop.EventRestored
		}
	}
	return loop.EventNone
}

func (app *Application) mainLoop(ctx context.Context) error {
	var state loop.State

	for !state.Exit() {
		if ctx.Err() != nil {
			log.WithError(ctx.Err()).Info("main loop cancelled")
			return nil
		}

		for event := sdl.WaitEventTimeout(waitTimeout); event != nil; event = sdl.PollEvent() {
			kind := translateEvent(event)
			if kind == loop.EventNone {
				continue
			}

			log.WithField("event", kind).Debug("window event")
			state.Handle(kind)
		}

		err := state.RedrawCleared(app.drawableExtent(), app.recreateSwapchain)
		if err != nil {
			return err
		}
	}

	return nil
}
