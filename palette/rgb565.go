package palette

// BlueMask selects how the blue channel is reduced to 5 bits.
type BlueMask uint8

const (
	// BlueMaskTop5 keeps the top 5 bits of blue (b & 0xF8).
	BlueMaskTop5 BlueMask = iota
	// BlueMaskLegacy reproduces tables generated with b & 0x7C, which drops the
	// most significant blue bit.
	BlueMaskLegacy
)

func (m BlueMask) bits() uint8 {
	if m == BlueMaskLegacy {
		return 0x7C
	}
	return 0xF8
}

func (m BlueMask) String() string {
	switch m {
	case BlueMaskTop5:
		return "top5"
	case BlueMaskLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// PackRGB565 packs 8-bit channels as rrrrrggggggbbbbb.
func PackRGB565(r, g, b uint8) uint16 {
	return PackRGB565Mask(r, g, b, BlueMaskTop5)
}

// PackRGB565Mask is PackRGB565 with an explicit blue mask.
func PackRGB565Mask(r, g, b uint8, mask BlueMask) uint16 {
	rr := uint16(r&0xF8) << 8
	gg := uint16(g&0xFC) << 3
	bb := uint16(b&mask.bits()) >> 3
	return rr | gg | bb
}

// UnpackRGB565 expands a packed pixel back to 8-bit channels.
func UnpackRGB565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// ByteSwap16 exchanges the high and low bytes of x.
func ByteSwap16(x uint16) uint16 {
	return (x&0xFF)<<8 | x>>8
}
