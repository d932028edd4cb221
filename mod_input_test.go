package levelwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInputApp(w *fakeWindow, captured bool) *App {
	return NewAppBuilder().
		UseModule(InputModule{Source: w, StartCaptured: captured}).
		Build()
}

func TestInputModule_KeyTransitions(t *testing.T) {
	w := newFakeWindow()
	app := newInputApp(w, false)
	input, _ := Resource[Input](app)

	w.press(KeyW)
	app.Step()
	assert.True(t, input.Pressed[KeyW])
	assert.True(t, input.JustPressed[KeyW])

	app.Step()
	assert.True(t, input.Pressed[KeyW])
	assert.False(t, input.JustPressed[KeyW])

	w.release(KeyW)
	app.Step()
	assert.False(t, input.Pressed[KeyW])
	assert.True(t, input.JustReleased[KeyW])
	assert.Empty(t, input.KeysDown())
}

func TestInputModule_PollsMouseOncePerFrame(t *testing.T) {
	w := newFakeWindow()
	app := newInputApp(w, true)
	input, _ := Resource[Input](app)

	w.moveMouse(3, -2)
	w.moveMouse(1, 1)
	app.Step()
	assert.Equal(t, 4.0, input.MouseDeltaX)
	assert.Equal(t, -1.0, input.MouseDeltaY)

	app.Step()
	assert.Zero(t, input.MouseDeltaX)
	assert.Zero(t, input.MouseDeltaY)
	assert.Equal(t, 2, w.mousePolls)
}

func TestInputModule_TabTogglesCapture(t *testing.T) {
	w := newFakeWindow()
	app := newInputApp(w, true)
	input, _ := Resource[Input](app)
	require.Equal(t, []bool{true}, w.captured)

	w.press(KeyTab)
	app.Step()
	assert.False(t, input.MouseCaptured)

	app.Step() // still held, no second toggle
	w.release(KeyTab)
	app.Step()
	w.press(KeyTab)
	app.Step()

	assert.True(t, input.MouseCaptured)
	assert.Equal(t, []bool{true, false, true}, w.captured)
}

func TestMouseAccumulator(t *testing.T) {
	var m MouseAccumulator

	m.MoveTo(100, 100) // anchor only
	m.MoveTo(110, 95)
	m.Add(1, 1)
	dx, dy := m.Poll()
	assert.Equal(t, 11.0, dx)
	assert.Equal(t, -4.0, dy)

	dx, dy = m.Poll()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	m.Forget()
	m.MoveTo(400, 300)
	dx, dy = m.Poll()
	assert.Zero(t, dx, "a warp after Forget is not motion")
	assert.Zero(t, dy)
}

func TestKeyByName(t *testing.T) {
	for name, want := range map[string]int{
		"W":       KeyW,
		"space":   KeySpace,
		"Control": KeyControl,
		"ctrl":    KeyControl,
		" 7 ":     Key7,
	} {
		got, ok := KeyByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := KeyByName("hyper")
	assert.False(t, ok)
}
