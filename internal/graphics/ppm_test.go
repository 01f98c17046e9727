package graphics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"nescore/internal/ppu"
)

func TestWritePPM(t *testing.T) {
	var frame [ppu.FrameSize]uint32
	frame[0] = 0xFF8040
	frame[1] = 0x0000FC

	var buf bytes.Buffer
	err := WritePPM(&buf, &frame)
	assert.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "P3", lines[0])
	assert.Equal(t, "256 240", lines[1])
	assert.Equal(t, "255", lines[2])
	assert.Equal(t, "255 128 64", lines[3])
	assert.Equal(t, "0 0 252", lines[4])
	assert.Equal(t, "0 0 0", lines[5])

	// Header, one line per pixel, trailing newline.
	assert.Equal(t, 3+ppu.FrameSize+1, len(lines))
}

func TestFrameToRGBA(t *testing.T) {
	var frame [ppu.FrameSize]uint32
	frame[0] = 0x123456

	pixels := make([]byte, ppu.FrameSize*4)
	frameToRGBA(&frame, pixels)

	assert.True(t, bytes.Equal([]byte{0x12, 0x34, 0x56, 0xFF}, pixels[:4]))
	assert.True(t, bytes.Equal([]byte{0x00, 0x00, 0x00, 0xFF}, pixels[4:8]))
}
