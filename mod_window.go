package levelwalk

// Window is the platform window driving the frame loop.
type Window interface {
	PollEvents()
	ShouldClose() bool
	FramebufferSize() (width, height int)
}

type WindowState struct {
	window Window

	Width  int
	Height int
}

// Aspect is width over height, or 1 while the window is minimised.
func (s *WindowState) Aspect() float32 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// WindowModule provides the shared WindowState resource. Closing the window
// ends the frame loop; with QuitOnEscape so does Escape, which needs
// InputModule installed as well.
type WindowModule struct {
	Window       Window
	QuitOnEscape bool
}

func (m WindowModule) Install(app *App, cmd *Commands) {
	ws := &WindowState{window: m.Window}
	ws.Width, ws.Height = m.Window.FramebufferSize()
	cmd.AddResources(ws)

	app.UseSystem(
		System(windowEventsSystem).
			InStage(PreUpdate),
	)
	if m.QuitOnEscape {
		app.UseSystem(
			System(quitOnEscapeSystem).
				InStage(PostUpdate),
		)
	}
	cmd.Logger().Infof("Window ready (%dx%d)", ws.Width, ws.Height)
}

func windowEventsSystem(ws *WindowState, cmd *Commands) {
	ws.window.PollEvents()
	ws.Width, ws.Height = ws.window.FramebufferSize()
	if ws.window.ShouldClose() {
		cmd.Logger().Infof("Window closed")
		cmd.Quit()
	}
}

func quitOnEscapeSystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Quit()
	}
}
