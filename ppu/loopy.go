package ppu

// loopy is a 15-bit internal PPU scroll/address register (v or t).
// Layout: yyy NN YYYYY XXXXX (fine Y, nametable select, coarse Y, coarse X).
// https://www.nesdev.org/wiki/PPU_scrolling
type loopy uint16

func (l loopy) coarseX() uint16 { return uint16(l) & 0x001F }

func (l *loopy) setCoarseX(val uint16) {
	*l = loopy(uint16(*l)&^0x001F | (val & 0x001F))
}

func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		*l = loopy(uint16(*l) &^ 0x001F)
		*l ^= 0x0400
	} else {
		*l++
	}
}

func (l loopy) coarseY() uint16 { return (uint16(l) >> 5) & 0x001F }

func (l *loopy) setCoarseY(val uint16) {
	*l = loopy(uint16(*l)&^0x03E0 | ((val & 0x001F) << 5))
}

func (l *loopy) incrementCoarseY() {
	switch y := l.coarseY(); y {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(y + 1)
	}
}

func (l loopy) nametableX() uint16    { return (uint16(l) >> 10) & 1 }
func (l *loopy) toggleNametableX()    { *l ^= 0x0400 }
func (l loopy) nametableY() uint16    { return (uint16(l) >> 11) & 1 }
func (l *loopy) toggleNametableY()    { *l ^= 0x0800 }
func (l loopy) fineY() uint16         { return (uint16(l) >> 12) & 0x0007 }

func (l *loopy) setFineY(val uint16) {
	*l = loopy(uint16(*l)&^0x7000 | ((val & 0x0007) << 12))
}

func (l *loopy) incrementFineY() {
	if fy := l.fineY(); fy == 7 {
		l.setFineY(0)
		l.incrementCoarseY()
	} else {
		l.setFineY(fy + 1)
	}
}

// nametableAddr is the address of the current tile's nametable byte.
func (l loopy) nametableAddr() uint16 {
	return 0x2000 | (uint16(l) & 0x0FFF)
}

// attributeAddr is the address of the current tile's attribute byte.
func (l loopy) attributeAddr() uint16 {
	return 0x23C0 | (uint16(l) & 0x0C00) | ((uint16(l) >> 4) & 0x0038) | ((uint16(l) >> 2) & 0x0007)
}
