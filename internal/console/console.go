// Package console wires the CPU, PPU, cartridge and controller into a
// runnable NES system.
package console

import (
	"context"

	"github.com/retroenv/retrogolib/log"

	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/input"
	"nescore/internal/memory"
	"nescore/internal/ppu"
)

// ppuCyclesPerCPUCycle is the NTSC clock ratio between the two units.
const ppuCyclesPerCPUCycle = 3

// Console owns one complete system and drives its components in
// lockstep: each CPU instruction is followed by three PPU cycles per
// consumed CPU cycle.
type Console struct {
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	cart   *cartridge.Cartridge
	joypad *input.Controller

	frameReady bool
	frames     uint64
}

// New assembles a console around a loaded cartridge. The CPU starts at
// the cartridge's reset vector.
func New(cart *cartridge.Cartridge, logger *log.Logger) *Console {
	c := &Console{
		cart:   cart,
		joypad: input.NewController(),
	}

	c.ppu = ppu.New(memory.NewPPUBus(cart, cart.Mirroring()))

	bus := memory.NewBus(c.ppu, cart, c.joypad, logger)
	c.cpu = cpu.New(bus, logger)
	bus.SetStaller(c.cpu)

	c.ppu.SetNMICallback(c.cpu.TriggerNMI)
	c.ppu.SetFrameCompleteCallback(func() {
		c.frameReady = true
		c.frames++
	})

	c.cpu.Reset()
	return c
}

// Step runs one CPU instruction and the PPU cycles it covers.
func (c *Console) Step() {
	ticks := c.cpu.Step()
	for i := uint64(0); i < ticks*ppuCyclesPerCPUCycle; i++ {
		c.ppu.Step()
	}
}

// StepFrame runs the system until the PPU finishes rendering the next
// frame.
func (c *Console) StepFrame() {
	c.frameReady = false
	for !c.frameReady {
		c.Step()
	}
}

// RunFrames renders count frames, stopping early when ctx is canceled.
func (c *Console) RunFrames(ctx context.Context, count uint64) error {
	for i := uint64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.StepFrame()
	}
	return nil
}

// Frame returns the last rendered screen as 0xRRGGBB pixels.
func (c *Console) Frame() *[ppu.FrameSize]uint32 {
	return c.ppu.Frame()
}

// Frames returns the number of frames rendered since power-on.
func (c *Console) Frames() uint64 {
	return c.frames
}

// SetButton forwards a host key change to the first controller.
func (c *Console) SetButton(b input.Button, pressed bool) {
	c.joypad.SetButton(b, pressed)
}

// CPU exposes the processor for tracing and conformance harnesses.
func (c *Console) CPU() *cpu.CPU {
	return c.cpu
}

// PPU exposes the picture unit.
func (c *Console) PPU() *ppu.PPU {
	return c.ppu
}

// Cartridge returns the inserted cartridge.
func (c *Console) Cartridge() *cartridge.Cartridge {
	return c.cart
}
