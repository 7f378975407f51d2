package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/feyli/arctrace/internal/config"
)

// Window wraps the glfw surface and translates its callbacks into the two
// boundary events the composition cares about: the activation pointer-down
// and viewport resizes.
type Window struct {
	win *glfw.Window
}

// New initializes glfw and opens the render surface. Must be called from the
// locked main OS thread.
func New(settings config.Settings) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	var monitor *glfw.Monitor
	width, height := settings.Width, settings.Height
	if settings.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	win, err := glfw.CreateWindow(width, height, "arctrace", monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	win.MakeContextCurrent()
	if settings.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return &Window{win: win}, nil
}

// OnActivate fires on any pointer press.
func (w *Window) OnActivate(f func()) {
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, _ glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			f()
		}
	})
}

// OnResize fires with the new framebuffer size.
func (w *Window) OnResize(f func(width, height int)) {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f(width, height)
	})
}

func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) Swap() {
	w.win.SwapBuffers()
}

func (w *Window) Poll() {
	glfw.PollEvents()
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
