package levelwalk

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestApp_addResourcesRejectsValues(t *testing.T) {
	app := newApp()
	assert.Panics(t, func() {
		app.addResources(MockResource1{name: "by value"})
	})
}

func TestResource(t *testing.T) {
	app := newApp()
	app.addResources(NewMockResource1("one"))

	res, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "one", res.name)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := newApp()
	var order []string
	app.addResources(&order)

	record := func(name string) func(*[]string) {
		return func(o *[]string) { *o = append(*o, name) }
	}
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("pre-update")).InStage(PreUpdate))
	app.UseSystem(System(record("pre-render")).InStage(PreRender))
	app.UseSystem(System(record("post-update")).InStage(PostUpdate))

	app.Step()

	assert.Equal(t, []string{"pre-update", "update", "post-update", "pre-render", "render"}, order)
	assert.Equal(t, uint64(1), app.Frames())
}

func TestApp_UseStage(t *testing.T) {
	app := newApp()
	physics := Stage{Name: "Physics"}
	app.UseStage(physics, AfterStage(Update))

	names := make([]string, 0, len(app.stages))
	for _, s := range app.stages {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"PreUpdate", "Update", "Physics", "PostUpdate", "PreRender", "Render"}, names)

	assert.PanicsWithValue(t, "Stage Physics already exists", func() {
		app.UseStage(physics, BeforeStage(Render))
	})
	assert.PanicsWithValue(t, "Stage Missing not found", func() {
		app.UseStage(Stage{Name: "Late"}, AfterStage(Stage{Name: "Missing"}))
	})
	assert.PanicsWithValue(t, "Stage Nowhere doesn't exist", func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nowhere"}))
	})
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := newApp()
	app.UseSystem(System(func(*MockResource2) {}))

	assert.Panics(t, app.Step)
}

func TestApp_SystemsMustTakePointers(t *testing.T) {
	app := newApp()
	assert.Panics(t, func() {
		app.UseSystem(System(func(MockResource1) {}))
	})
	assert.Panics(t, func() {
		app.UseSystem(System("not a func"))
	})
}

func TestApp_RunUntilQuit(t *testing.T) {
	app := newApp()
	app.UseSystem(System(func(cmd *Commands) {
		if cmd.app.Frames() == 2 {
			cmd.Quit()
		}
	}))

	app.Run()

	assert.Equal(t, uint64(3), app.Frames())
}

func TestApp_LoggerDefaultsToNop(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, newApp().Logger())
}
