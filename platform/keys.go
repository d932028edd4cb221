package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	lw "github.com/gekko3d/levelwalk"
)

var keyToGlfw = map[int]glfw.Key{
	lw.KeyA:         glfw.KeyA,
	lw.KeyB:         glfw.KeyB,
	lw.KeyC:         glfw.KeyC,
	lw.KeyD:         glfw.KeyD,
	lw.KeyE:         glfw.KeyE,
	lw.KeyF:         glfw.KeyF,
	lw.KeyG:         glfw.KeyG,
	lw.KeyH:         glfw.KeyH,
	lw.KeyI:         glfw.KeyI,
	lw.KeyJ:         glfw.KeyJ,
	lw.KeyK:         glfw.KeyK,
	lw.KeyL:         glfw.KeyL,
	lw.KeyM:         glfw.KeyM,
	lw.KeyN:         glfw.KeyN,
	lw.KeyO:         glfw.KeyO,
	lw.KeyP:         glfw.KeyP,
	lw.KeyQ:         glfw.KeyQ,
	lw.KeyR:         glfw.KeyR,
	lw.KeyS:         glfw.KeyS,
	lw.KeyT:         glfw.KeyT,
	lw.KeyU:         glfw.KeyU,
	lw.KeyV:         glfw.KeyV,
	lw.KeyW:         glfw.KeyW,
	lw.KeyX:         glfw.KeyX,
	lw.KeyY:         glfw.KeyY,
	lw.KeyZ:         glfw.KeyZ,
	lw.Key0:         glfw.Key0,
	lw.Key1:         glfw.Key1,
	lw.Key2:         glfw.Key2,
	lw.Key3:         glfw.Key3,
	lw.Key4:         glfw.Key4,
	lw.Key5:         glfw.Key5,
	lw.Key6:         glfw.Key6,
	lw.Key7:         glfw.Key7,
	lw.Key8:         glfw.Key8,
	lw.Key9:         glfw.Key9,
	lw.KeySpace:     glfw.KeySpace,
	lw.KeyEnter:     glfw.KeyEnter,
	lw.KeyEscape:    glfw.KeyEscape,
	lw.KeyTab:       glfw.KeyTab,
	lw.KeyBackspace: glfw.KeyBackspace,
	lw.KeyRight:     glfw.KeyRight,
	lw.KeyLeft:      glfw.KeyLeft,
	lw.KeyDown:      glfw.KeyDown,
	lw.KeyUp:        glfw.KeyUp,
	lw.KeyShift:     glfw.KeyLeftShift,
	lw.KeyControl:   glfw.KeyLeftControl,
	lw.KeyLeftAlt:   glfw.KeyLeftAlt,
}
