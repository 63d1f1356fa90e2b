package ebbinghaus

// Table is the ordered sequence of canonical review gaps in days, derived
// from the Ebbinghaus forgetting curve. A schedule's ladder index is a
// position in this table.
type Table []int

// DefaultTable is the standard review ladder. Successful reviews climb it;
// a forgotten review restarts at the bottom.
var DefaultTable = Table{1, 3, 7, 14, 30, 60, 90, 180}

// At returns the interval in days at the given ladder index. The index is
// clamped to [0, len-1]: positions beyond the last entry repeat the maximum
// interval rather than erroring or wrapping around. The ladder has a ceiling,
// not a wraparound.
func (t Table) At(index int) int {
	if index < 0 {
		index = 0
	}
	if index > len(t)-1 {
		index = len(t) - 1
	}
	return t[index]
}

// MaxIndex returns the highest valid ladder index.
func (t Table) MaxIndex() int {
	return len(t) - 1
}
