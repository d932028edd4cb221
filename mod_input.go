package levelwalk

import (
	"strings"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyShift
	KeyControl
	KeyLeftAlt

	keyCount
)

var keyNames = map[string]int{
	"space": KeySpace, "enter": KeyEnter, "escape": KeyEscape, "tab": KeyTab,
	"backspace": KeyBackspace, "right": KeyRight, "left": KeyLeft, "down": KeyDown,
	"up": KeyUp, "shift": KeyShift, "control": KeyControl, "ctrl": KeyControl,
	"alt": KeyLeftAlt,
}

func init() {
	for i := 0; i < 26; i++ {
		keyNames[string(rune('a'+i))] = KeyA + i
	}
	for i := 0; i < 10; i++ {
		keyNames[string(rune('0'+i))] = Key0 + i
	}
}

// KeyByName resolves names such as "W", "Space" or "Control".
func KeyByName(name string) (int, bool) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// InputSource is the platform side of input. PollAndResetMouseDelta returns
// the motion accumulated since the previous call and zeroes it.
type InputSource interface {
	KeysDown() map[int]bool
	PollAndResetMouseDelta() (dx, dy float64)
	SetMouseCaptured(captured bool)
}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool
}

// KeysDown lists the keys held this frame.
func (in *Input) KeysDown() map[int]bool {
	down := make(map[int]bool)
	for key, pressed := range in.Pressed {
		if pressed {
			down[key] = true
		}
	}
	return down
}

type InputModule struct {
	Source        InputSource
	StartCaptured bool
}

type inputState struct {
	source InputSource
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{MouseCaptured: mod.StartCaptured}
	mod.Source.SetMouseCaptured(mod.StartCaptured)

	cmd.AddResources(input, &inputState{source: mod.Source})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(state *inputState, input *Input) {
	down := state.source.KeysDown()
	for key := range input.Pressed {
		now := down[key]
		input.JustPressed[key] = now && !input.Pressed[key]
		input.JustReleased[key] = !now && input.Pressed[key]
		input.Pressed[key] = now
	}

	// exactly one poll per frame, whether or not anyone looks at it
	input.MouseDeltaX, input.MouseDeltaY = state.source.PollAndResetMouseDelta()

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
		state.source.SetMouseCaptured(input.MouseCaptured)
	}
}

// MouseAccumulator sums relative pointer motion between polls. Platform
// callbacks feed it from the main thread during event polling.
type MouseAccumulator struct {
	dx, dy       float64
	lastX, lastY float64
	haveLast     bool
}

// Add records relative motion.
func (m *MouseAccumulator) Add(dx, dy float64) {
	m.dx += dx
	m.dy += dy
}

// MoveTo records an absolute cursor position; the first one only anchors.
func (m *MouseAccumulator) MoveTo(x, y float64) {
	if m.haveLast {
		m.Add(x-m.lastX, y-m.lastY)
	}
	m.lastX, m.lastY = x, y
	m.haveLast = true
}

// Forget drops the anchor so a cursor warp does not register as motion.
func (m *MouseAccumulator) Forget() {
	m.haveLast = false
}

// Poll returns the motion since the last Poll and resets it.
func (m *MouseAccumulator) Poll() (dx, dy float64) {
	dx, dy = m.dx, m.dy
	m.dx, m.dy = 0, 0
	return dx, dy
}
