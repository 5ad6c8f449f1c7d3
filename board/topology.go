package board

// The pyramid is a fixed 28-slot arena indexed row by row:
//
//	      0
//	     1 2
//	    3 4 5
//	   6 7 8 9
//	  0 1 2 3 4
//	 5 6 7 8 9 0
//	1 2 3 4 5 6 7
//
// Topology never depends on ranks, so the blocking relations are
// precomputed once as static index tables and shared by every board.

const (
	// NumRows is the pyramid height.
	NumRows = 7
	// NumSlots is the total number of pyramid positions.
	NumSlots = 28
)

var (
	// childrenOf holds the two slots directly covering each non-bottom
	// slot; bottom-row entries are {-1, -1}.
	childrenOf [NumSlots][2]int
	// parentsOf holds the one or two slots each card directly blocks.
	parentsOf [NumSlots][]int
	// ancestorsOf holds every slot above that a card helps block, i.e.
	// the transitive closure of parentsOf.
	ancestorsOf [NumSlots][]int
	// blockedBy holds, as a bitmask, every slot below that must be
	// cleared before a card becomes a leaf.
	blockedBy [NumSlots]uint32
)

func slotIndex(row, col int) int {
	return row*(row+1)/2 + col
}

func init() {
	for row := 0; row < NumRows; row++ {
		for col := 0; col <= row; col++ {
			i := slotIndex(row, col)
			if row == NumRows-1 {
				childrenOf[i] = [2]int{-1, -1}
				continue
			}
			childrenOf[i] = [2]int{slotIndex(row+1, col), slotIndex(row+1, col+1)}
		}
	}
	for i := 0; i < NumSlots; i++ {
		for _, ch := range childrenOf[i] {
			if ch >= 0 {
				parentsOf[ch] = append(parentsOf[ch], i)
			}
		}
	}
	// Transitive closures, walking bottom-up for blockers and top-down
	// for ancestors.
	for i := NumSlots - 1; i >= 0; i-- {
		for _, ch := range childrenOf[i] {
			if ch >= 0 {
				blockedBy[i] |= 1<<uint(ch) | blockedBy[ch]
			}
		}
	}
	for i := 0; i < NumSlots; i++ {
		seen := uint32(0)
		var walk func(j int)
		walk = func(j int) {
			for _, p := range parentsOf[j] {
				if seen&(1<<uint(p)) == 0 {
					seen |= 1 << uint(p)
					walk(p)
				}
			}
		}
		walk(i)
		for j := 0; j < NumSlots; j++ {
			if seen&(1<<uint(j)) != 0 {
				ancestorsOf[i] = append(ancestorsOf[i], j)
			}
		}
	}
}
