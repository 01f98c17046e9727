// Package graphics presents rendered frames on screen and as image files.
package graphics

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"nescore/internal/console"
	"nescore/internal/input"
	"nescore/internal/ppu"
)

const windowScale = 3

// keyBindings maps host keys to controller buttons.
var keyBindings = map[ebiten.Key]input.Button{
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyX:          input.ButtonA,
	ebiten.KeyZ:          input.ButtonB,
	ebiten.KeyS:          input.ButtonStart,
	ebiten.KeyA:          input.ButtonSelect,
}

// Game drives the console from the host display loop, one emulated frame
// per display frame.
type Game struct {
	console *console.Console
	pixels  []byte
}

// NewGame wraps a console for the display loop.
func NewGame(c *console.Console) *Game {
	return &Game{
		console: c,
		pixels:  make([]byte, ppu.FrameSize*4),
	}
}

// Update polls the keyboard and advances the emulation by one frame.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, button := range keyBindings {
		g.console.SetButton(button, ebiten.IsKeyPressed(key))
	}
	g.console.StepFrame()
	return nil
}

// Draw copies the rendered frame to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	frameToRGBA(g.console.Frame(), g.pixels)
	screen.WritePixels(g.pixels)
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

// frameToRGBA expands 0xRRGGBB pixels into the RGBA byte layout the
// display expects.
func frameToRGBA(frame *[ppu.FrameSize]uint32, pixels []byte) {
	for i, c := range frame {
		pixels[i*4] = byte(c >> 16)
		pixels[i*4+1] = byte(c >> 8)
		pixels[i*4+2] = byte(c)
		pixels[i*4+3] = 0xFF
	}
}

// Run opens the emulator window and blocks until it is closed or the
// escape key is pressed.
func Run(c *console.Console, title string) error {
	ebiten.SetWindowSize(ppu.Width*windowScale, ppu.Height*windowScale)
	ebiten.SetWindowTitle(title)

	if err := ebiten.RunGame(NewGame(c)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
