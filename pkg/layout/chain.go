package layout

// Chain links sequential records by index. Neighbors of record i are i-1
// and i+1 when they exist.
type Chain struct {
	n int
}

// Neighbors builds a chain over n records.
func Neighbors(n int) Chain { return Chain{n: max(0, n)} }

// Len is the number of records in the chain.
func (c Chain) Len() int { return c.n }

// Prev returns the index before i.
func (c Chain) Prev(i int) (int, bool) {
	if i <= 0 || i >= c.n {
		return 0, false
	}
	return i - 1, true
}

// Next returns the index after i.
func (c Chain) Next(i int) (int, bool) {
	if i < 0 || i >= c.n-1 {
		return 0, false
	}
	return i + 1, true
}
