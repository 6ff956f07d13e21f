package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sunblock/internal/engine/input"
)

// PollEvents drains the SDL queue into dst. Consecutive pointer moves are
// coalesced to the last position.
func (w *Window) PollEvents(dst []input.Event) []input.Event {
	dst = dst[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			// Resize payloads are in window units; report the drawable size instead.
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.DrawableSize()
				dst = append(dst, input.Event{
					Type:   input.EventResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				dst = append(dst, input.Event{
					Type: input.EventKeyDown,
					Key:  keyFromScancode(e.Keysym.Scancode),
				})
			}

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type: input.EventPointerMove,
				X:    float64(e.X),
				Y:    float64(e.Y),
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventPointerUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = input.EventPointerDown
			}
			dst = append(dst, input.Event{
				Type: typ,
				X:    float64(e.X),
				Y:    float64(e.Y),
			})
		}
	}

	return input.Coalesce(dst)
}

func keyFromScancode(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F12:
		return input.KeyScreenshot
	default:
		return input.KeyUnknown
	}
}
