// Package ppu implements a frame-stepped picture processing unit.
//
// The unit tracks real scanline and cycle timing for its status bits and
// interrupts but renders the whole screen in one pass at the end of the
// visible frame instead of per pixel.
package ppu

import "fmt"

const (
	// Width and Height are the visible screen dimensions in pixels.
	Width  = 256
	Height = 240

	// FrameSize is the pixel count of one rendered frame.
	FrameSize = Width * Height

	oamSize = 256

	cyclesPerScanline = 340
	scanlinesPerFrame = 261
)

// Memory is the PPU-side address space: pattern tables, nametables and
// palette RAM.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// PPU holds the register file, sprite memory and rendering state of the
// picture unit. Register access goes through ReadRegister/WriteRegister
// with the CPU-visible $2000-$2007 addresses.
type PPU struct {
	mem Memory

	status     uint8
	oamAddr    uint8
	oam        [oamSize]uint8
	addr       uint16
	writeLatch bool
	buffer     uint8

	nametableAddr     uint16
	addrIncrement     uint16
	spritePattern     uint16
	backgroundPattern uint16
	generateNMI       bool

	showBackground     bool
	showSprites        bool
	leftBackgroundShow bool
	leftSpriteShow     bool

	scanline int
	cycle    int

	frame    [FrameSize]uint32
	bgOpaque [FrameSize]bool

	nmiCallback           func()
	frameCompleteCallback func()
}

// New creates a PPU reading pattern data through mem.
func New(mem Memory) *PPU {
	return &PPU{
		mem:           mem,
		addrIncrement: 1,
	}
}

// SetNMICallback registers the function invoked when vblank starts while
// NMI generation is enabled.
func (p *PPU) SetNMICallback(f func()) {
	p.nmiCallback = f
}

// SetFrameCompleteCallback registers the function invoked after the frame
// buffer has been rendered, once per frame.
func (p *PPU) SetFrameCompleteCallback(f func()) {
	p.frameCompleteCallback = f
}

// Frame returns the rendered screen as 0xRRGGBB pixels in row-major order.
func (p *PPU) Frame() *[FrameSize]uint32 {
	return &p.frame
}

// Scanline returns the current scanline, 0-261.
func (p *PPU) Scanline() int {
	return p.scanline
}

// Cycle returns the current cycle within the scanline, 0-340.
func (p *PPU) Cycle() int {
	return p.cycle
}

// Step advances the PPU by one cycle. Rendering happens in a single pass
// at the end of the last visible scanline; vblank begins on scanline 241
// and ends on the pre-render line.
func (p *PPU) Step() {
	if p.scanline == 240 && p.cycle == 256 {
		p.renderFrame()
		if p.frameCompleteCallback != nil {
			p.frameCompleteCallback()
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status |= 0x80
		if p.generateNMI && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	if p.scanline == 261 && p.cycle == 1 {
		// Vblank off, clear sprite zero hit and sprite overflow.
		p.status &^= 0xE0
	}

	p.cycle++
	if p.cycle > cyclesPerScanline {
		p.cycle = 0
		p.scanline++
		if p.scanline > scanlinesPerFrame {
			p.scanline = 0
		}
	}
}

// ReadRegister reads a memory-mapped register.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		p.writeLatch = false
		value := p.status
		p.status &^= 0x80
		return value
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readData()
	default:
		panic(fmt.Sprintf("unrecognized ppu register read at $%04X", address))
	}
}

// WriteRegister writes a memory-mapped register.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x2000:
		p.nametableAddr = 0x2000 + uint16(value&0x03)*0x400
		if value&0x04 != 0 {
			p.addrIncrement = 32
		} else {
			p.addrIncrement = 1
		}
		p.spritePattern = uint16(value>>3&1) * 0x1000
		p.backgroundPattern = uint16(value>>4&1) * 0x1000
		p.generateNMI = value&0x80 != 0
	case 0x2001:
		p.leftBackgroundShow = value&0x02 != 0
		p.leftSpriteShow = value&0x04 != 0
		p.showBackground = value&0x08 != 0
		p.showSprites = value&0x10 != 0
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		// Scroll register, not implemented.
	case 0x2006:
		// The 16-bit address arrives one byte at a time, high byte first.
		if !p.writeLatch {
			p.addr = p.addr&0x00FF | uint16(value)<<8
		} else {
			p.addr = p.addr&0xFF00 | uint16(value)
		}
		p.writeLatch = !p.writeLatch
	case 0x2007:
		p.mem.Write(p.addr, value)
		p.addr += p.addrIncrement
	default:
		panic(fmt.Sprintf("unrecognized ppu register write at $%04X", address))
	}
}

// WriteOAMDMA stores a DMA page into sprite memory starting at the
// current OAM address.
func (p *PPU) WriteOAMDMA(data []uint8) {
	for _, value := range data {
		p.oam[p.oamAddr] = value
		p.oamAddr++
	}
}

// readData implements the buffered $2007 read: reads below the palette
// range lag one access behind, palette reads return immediately while the
// buffer is refilled from the nametable underneath.
func (p *PPU) readData() uint8 {
	var value uint8
	if p.addr%0x4000 < 0x3F00 {
		value = p.buffer
		p.buffer = p.mem.Read(p.addr)
	} else {
		value = p.mem.Read(p.addr)
		p.buffer = p.mem.Read(p.addr - 0x1000)
	}
	p.addr += p.addrIncrement
	return value
}

func (p *PPU) renderFrame() {
	for i := range p.bgOpaque {
		p.bgOpaque[i] = false
	}
	if p.showBackground {
		p.drawBackground()
	}
	if p.showSprites {
		p.drawSprites()
	}
}

// drawBackground renders the 32x30 tile grid of the selected nametable,
// recording which pixels are opaque for sprite priority and sprite zero
// hit detection.
func (p *PPU) drawBackground() {
	attrTable := p.nametableAddr + 960
	for y := 0; y < 30; y++ {
		for x := 0; x < 32; x++ {
			tile := uint16(p.mem.Read(p.nametableAddr + uint16(y*32+x)))
			attrEntry := p.mem.Read(attrTable + uint16(y/4*8+x/4))

			// Each attribute byte covers a 4x4 tile area split into
			// four 2x2 blocks, two palette bits per block.
			block := y&0x02 | x&0x02>>1
			var attrBits uint8
			switch block {
			case 0:
				attrBits = attrEntry & 0x03 << 2
			case 1:
				attrBits = attrEntry & 0x0C
			case 2:
				attrBits = attrEntry & 0x30 >> 2
			case 3:
				attrBits = attrEntry & 0xC0 >> 4
			}

			for fineY := 0; fineY < 8; fineY++ {
				lowOrder := p.mem.Read(p.backgroundPattern + tile*16 + uint16(fineY))
				highOrder := p.mem.Read(p.backgroundPattern + tile*16 + 8 + uint16(fineY))

				for fineX := 0; fineX < 8; fineX++ {
					pixel := lowOrder>>(7-fineX)&1 | highOrder>>(7-fineX)&1<<1 | attrBits

					index := (y*8+fineY)*Width + x*8 + fineX
					if pixel&3 == 0 {
						p.frame[index] = Palette[p.mem.Read(0x3F00)&0x3F]
					} else {
						p.bgOpaque[index] = true
						p.frame[index] = Palette[p.mem.Read(0x3F00+uint16(pixel))&0x3F]
					}
				}
			}
		}
	}
}

// drawSprites renders sprite memory back to front so that sprite zero,
// which participates in hit detection, is drawn last.
func (p *PPU) drawSprites() {
	for i := oamSize - 4; i >= 0; i -= 4 {
		yPos := int(p.oam[i])
		if yPos == 0xFF { // no sprite data
			continue
		}

		tile := uint16(p.oam[i+1])
		attr := p.oam[i+2]
		xPos := int(p.oam[i+3])

		behindBackground := attr&0x20 != 0
		flipX := attr&0x40 != 0
		flipY := attr&0x80 != 0
		attrBits := attr & 0x03 << 2

		for yOff := 0; yOff < 8; yOff++ {
			y := yPos + yOff
			if y >= Height {
				continue
			}

			line := yOff
			if flipY {
				line = 7 - yOff
			}
			lowOrder := p.mem.Read(p.spritePattern + tile*16 + uint16(line))
			highOrder := p.mem.Read(p.spritePattern + tile*16 + uint16(line) + 8)

			for xOff := 0; xOff < 8; xOff++ {
				x := xPos + xOff
				if x >= Width {
					continue
				}

				bit := xOff
				if !flipX {
					bit = 7 - xOff
				}
				pixel := highOrder>>bit&1<<1 | lowOrder>>bit&1
				if pixel == 0 {
					continue
				}

				index := y*Width + x
				if i == 0 && p.bgOpaque[index] && p.spriteZeroVisible(x) {
					p.status |= 0x40
				}

				if behindBackground && p.bgOpaque[index] {
					continue
				}

				color := p.mem.Read(0x3F10 + uint16(attrBits|pixel))
				p.frame[index] = Palette[color&0x3F]
			}
		}
	}
}

// spriteZeroVisible reports whether a sprite zero pixel at x can trigger
// a hit, honoring the left 8 pixel clipping windows.
func (p *PPU) spriteZeroVisible(x int) bool {
	if !p.showBackground || !p.showSprites {
		return false
	}
	if x < 8 && (!p.leftSpriteShow || !p.leftBackgroundShow) {
		return false
	}
	return true
}
