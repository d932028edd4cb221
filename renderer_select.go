package levelwalk

import (
	"fmt"
	"strings"
)

// RendererName identifies a graphics backend.
type RendererName string

const (
	RendererWGPU RendererName = "wgpu"
	RendererGL   RendererName = "gl"
)

// ParseRendererName accepts "wgpu"/"webgpu" and "gl"/"opengl".
func ParseRendererName(s string) (RendererName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wgpu", "webgpu":
		return RendererWGPU, nil
	case "gl", "opengl":
		return RendererGL, nil
	}
	return "", &ConfigurationError{Field: "renderer", Reason: fmt.Sprintf("unknown renderer %q", s)}
}

// RendererTag records which backend the App draws with.
type RendererTag struct {
	Name RendererName
}

// ensureSingleRenderer tags app with name. Installing a second, different
// backend is a wiring mistake and panics.
func ensureSingleRenderer(app *App, name RendererName) {
	tag, ok := Resource[RendererTag](app)
	if !ok {
		app.addResources(&RendererTag{Name: name})
		return
	}
	if tag.Name != name {
		msg := fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
}

// UseRenderer installs the render module for exactly one backend.
// Usage:
//
//	app.UseRenderer(RendererGL, RenderModule{Graphics: g, ...})
func (app *App) UseRenderer(name RendererName, mod RenderModule) *App {
	ensureSingleRenderer(app, name)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// RendererModule pairs a backend name with its RenderModule so it can go
// through AppBuilder like any other module.
type RendererModule struct {
	Name   RendererName
	Render RenderModule
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	app.UseRenderer(m.Name, m.Render)
}
