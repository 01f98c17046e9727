// Package input implements the NES joypad strobe-and-shift register.
package input

// Button identifies one joypad button as a bit in the controller's state
// byte, in the order the hardware reports them.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller models the joypad port at $4016. Writing the strobe bit
// latches the current button state; sequential reads then shift out one
// button per read, A first.
type Controller struct {
	buttons uint8
	strobe  bool
	index   uint8
}

// NewController returns a controller with no buttons pressed.
func NewController() *Controller {
	return &Controller{}
}

// SetButton records a button press or release from the host input layer.
func (c *Controller) SetButton(b Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(b)
	} else {
		c.buttons &^= uint8(b)
	}
}

// Write drives the strobe bit. Dropping the strobe rewinds the shift
// position so the next eight reads report the full button set.
func (c *Controller) Write(value uint8) {
	strobe := value&1 != 0
	if c.strobe && !strobe {
		c.index = 0
	}
	c.strobe = strobe
}

// Read shifts out the next button bit. The upper bits mirror the open bus
// behavior of the real port, so a pressed button reads as 0x41 and a
// released one as 0x40; reads past the eighth report 0x41.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return 0x40 | c.buttons&1
	}
	if c.index >= 8 {
		return 0x41
	}
	bit := (c.buttons >> c.index) & 1
	c.index++
	return 0x40 | bit
}
