// Package gradient maps iteration counts to colours.
package gradient

// Table holds one RGB triple per iteration count in [0, maxIter]. It is
// read-only after New and safe for concurrent use.
type Table struct {
	maxIter int
	pix     []byte
}

// New builds the table with the smooth polynomial palette
//
//	R = 9(1-t)t^3, G = 15(1-t)^2 t^2, B = 8.5(1-t)^3 t, t = i/maxIter
//
// scaled to bytes. Interior points (i = maxIter) come out black.
func New(maxIter int) *Table {
	if maxIter < 1 {
		maxIter = 1
	}
	t := &Table{maxIter: maxIter, pix: make([]byte, 3*(maxIter+1))}
	for i := 0; i <= maxIter; i++ {
		x := float64(i) / float64(maxIter)
		u := 1 - x
		t.pix[3*i] = byte(9 * u * x * x * x * 255)
		t.pix[3*i+1] = byte(15 * u * u * x * x * 255)
		t.pix[3*i+2] = byte(8.5 * u * u * u * x * 255)
	}
	return t
}

func (t *Table) MaxIter() int { return t.maxIter }
func (t *Table) Len() int     { return t.maxIter + 1 }

// RGB returns the colour for count i, clamped into [0, maxIter].
func (t *Table) RGB(i int) (r, g, b byte) {
	if i < 0 {
		i = 0
	} else if i > t.maxIter {
		i = t.maxIter
	}
	p := t.pix[3*i : 3*i+3]
	return p[0], p[1], p[2]
}

// Put writes the colour for count i into dst[0:3].
func (t *Table) Put(dst []byte, i int) {
	r, g, b := t.RGB(i)
	dst[0], dst[1], dst[2] = r, g, b
}
