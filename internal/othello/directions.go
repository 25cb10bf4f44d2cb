package othello

const (
	notFileA = 0xFEFEFEFEFEFEFEFE
	notFileH = 0x7F7F7F7F7F7F7F7F
	allFiles = 0xFFFFFFFFFFFFFFFF

	// maxRun is the longest line of opponent discs one move can flip on an 8x8 board.
	maxRun = 6
)

// direction shifts a bitboard one square along a ray. Positive shifts move
// towards higher bit indices. The mask clears bits that wrapped around to the
// other side of the board.
type direction struct {
	shift int
	mask  uint64
}

var directions = [8]direction{
	{shift: 1, mask: notFileA},  // east
	{shift: -1, mask: notFileH}, // west
	{shift: 8, mask: allFiles},  // south
	{shift: -8, mask: allFiles}, // north
	{shift: 9, mask: notFileA},  // south east
	{shift: 7, mask: notFileH},  // south west
	{shift: -7, mask: notFileA}, // north east
	{shift: -9, mask: notFileH}, // north west
}

func (d direction) step(x uint64) uint64 {
	if d.shift > 0 {
		return (x << d.shift) & d.mask
	}
	return (x >> -d.shift) & d.mask
}
