package input

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReadWhileStrobeHighReturnsButtonA(t *testing.T) {
	c := NewController()
	c.Write(1)

	assert.Equal(t, uint8(0x40), c.Read())

	c.SetButton(ButtonA, true)

	// The shift position stays locked while the strobe is high.
	assert.Equal(t, uint8(0x41), c.Read())
	assert.Equal(t, uint8(0x41), c.Read())
}

func TestSequentialReadsShiftOutAllButtons(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonSelect, true)
	c.SetButton(ButtonDown, true)
	c.Write(1)
	c.Write(0)

	want := []uint8{
		0x41, // A
		0x40, // B
		0x41, // Select
		0x40, // Start
		0x40, // Up
		0x41, // Down
		0x40, // Left
		0x40, // Right
	}
	for i, w := range want {
		got := c.Read()
		if got != w {
			t.Errorf("read %d: got 0x%02X, want 0x%02X", i, got, w)
		}
	}
}

func TestReadsPastEighthReturnPressed(t *testing.T) {
	c := NewController()
	c.Write(1)
	c.Write(0)

	for i := 0; i < 8; i++ {
		c.Read()
	}

	assert.Equal(t, uint8(0x41), c.Read())
	assert.Equal(t, uint8(0x41), c.Read())
}

func TestRestrobeRewindsShiftPosition(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonB, true)
	c.Write(1)
	c.Write(0)

	c.Read() // A
	c.Read() // B

	c.Write(1)
	c.Write(0)

	assert.Equal(t, uint8(0x40), c.Read()) // A again
	assert.Equal(t, uint8(0x41), c.Read()) // B
}

func TestButtonRelease(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonStart, true)
	c.SetButton(ButtonStart, false)
	c.Write(1)
	c.Write(0)

	c.Read()
	c.Read()
	c.Read()
	assert.Equal(t, uint8(0x40), c.Read()) // Start released
}
