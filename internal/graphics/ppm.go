package graphics

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"nescore/internal/ppu"
)

// WritePPM writes a frame as a plain-text PPM image, one pixel per line.
func WritePPM(w io.Writer, frame *[ppu.FrameSize]uint32) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", ppu.Width, ppu.Height)
	for _, c := range frame {
		fmt.Fprintf(bw, "%d %d %d\n", c>>16&0xFF, c>>8&0xFF, c&0xFF)
	}
	return bw.Flush()
}

// SaveFramePPM writes a frame to the file at path.
func SaveFramePPM(path string, frame *[ppu.FrameSize]uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePPM(f, frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
