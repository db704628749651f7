package agent

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GlfwAgent owns a glfw window and pumps its input into an Agent.
type GlfwAgent interface {
	// Agent returns the agent events are fed to.
	Agent() Agent

	// Poll processes pending window events without blocking.
	//
	// Returns:
	//   - bool: false once the window should close
	Poll() bool

	// Size returns the current framebuffer size in pixels.
	Size() (width, height int)

	// Close destroys the window and terminates glfw.
	Close() error
}

type glfwAgentImpl struct {
	agent    Agent
	window   *glfw.Window
	onResize func(width, height int)
	running  bool

	// mods mirrors the modifier mask of the latest key or button event.
	// glfw's scroll callback carries no modifiers of its own.
	mods int
}

var _ GlfwAgent = &glfwAgentImpl{}

// NewGlfwAgent opens a glfw window and wires its callbacks to an agent.
// Must be called from the main goroutine; the calling goroutine is locked
// to its OS thread for glfw's benefit.
//
// Parameters:
//   - a: the agent to feed
//   - width, height: the requested window size in screen coordinates
//   - title: the window title
//   - opts: optional GlfwOption configuration
//
// Returns:
//   - GlfwAgent: the window-owning adapter
//   - error: error if glfw initialization or window creation fails
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func NewGlfwAgent(a Agent, width, height int, title string, opts ...GlfwOption) (GlfwAgent, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// The interaction core does not render, so no client API context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}

	ga := &glfwAgentImpl{
		agent:   a,
		window:  win,
		running: true,
	}
	for _, opt := range opts {
		opt(ga)
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		ga.mods = int(mods)
		if key == glfw.KeyEscape && action == glfw.Press {
			ga.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			a.HandleKey(int(key), int(mods), true)
		case glfw.Release:
			a.HandleKey(int(key), int(mods), false)
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		ga.mods = int(mods)
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			a.HandleButtonPress(int(button), int(mods), float32(xpos), float32(ypos))
		case glfw.Release:
			a.HandleButtonRelease(int(button), int(mods), float32(xpos), float32(ypos))
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		a.HandleCursorMove(float32(xpos), float32(ypos))
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		a.HandleScroll(ga.mods, float32(yoff))
	})

	// Framebuffer size, not window size: high-DPI displays differ and the
	// projection needs pixel dimensions.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if ga.onResize != nil {
			ga.onResize(w, h)
		}
	})

	if ga.onResize != nil {
		fbW, fbH := win.GetFramebufferSize()
		ga.onResize(fbW, fbH)
	}

	return ga, nil
}

func (ga *glfwAgentImpl) Agent() Agent {
	return ga.agent
}

func (ga *glfwAgentImpl) Poll() bool {
	glfw.PollEvents()
	return ga.running && !ga.window.ShouldClose()
}

func (ga *glfwAgentImpl) Size() (int, int) {
	return ga.window.GetFramebufferSize()
}

func (ga *glfwAgentImpl) Close() error {
	if ga.window == nil {
		return fmt.Errorf("window is not initialized")
	}
	ga.running = false
	ga.window.SetShouldClose(true)
	ga.window.Destroy()
	glfw.Terminate()
	return nil
}

// GlfwOption is a functional option for configuring a GlfwAgent at
// creation.
type GlfwOption func(*glfwAgentImpl)

// WithResizeHandler registers a callback invoked with the framebuffer
// size at startup and on every resize. Use it to keep the eye's screen
// dimensions current.
//
// Parameters:
//   - handler: the resize callback
//
// Returns:
//   - GlfwOption: the configuration function
func WithResizeHandler(handler func(width, height int)) GlfwOption {
	return func(ga *glfwAgentImpl) {
		ga.onResize = handler
	}
}
