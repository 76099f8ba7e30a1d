// SPDX-License-Identifier: MIT

package election

// BudgetMatrix is the per-voter remaining budget, one row per voter and
// one column per resource dimension, stored row-major (offset = v*cols + r).
//
// It is ephemeral state owned by a single rule invocation.
type BudgetMatrix struct {
	rows, cols int
	data       []float64
}

// NewBudgetMatrix returns a zeroed voters×resources matrix.
func NewBudgetMatrix(voters, resources int) *BudgetMatrix {
	return &BudgetMatrix{rows: voters, cols: resources, data: make([]float64, voters*resources)}
}

// EqualSplit returns a matrix where every voter holds budget[r]/voters in
// dimension r. voters must be positive.
func EqualSplit(budget []float64, voters int) *BudgetMatrix {
	m := NewBudgetMatrix(voters, len(budget))
	for v := 0; v < voters; v++ {
		for r, b := range budget {
			m.data[v*m.cols+r] = b / float64(voters)
		}
	}

	return m
}

// Voters returns the number of rows.
func (m *BudgetMatrix) Voters() int { return m.rows }

// Resources returns the number of columns.
func (m *BudgetMatrix) Resources() int { return m.cols }

// At returns voter v's remaining budget in dimension r.
func (m *BudgetMatrix) At(v, r int) float64 { return m.data[v*m.cols+r] }

// Set overwrites voter v's remaining budget in dimension r.
func (m *BudgetMatrix) Set(v, r int, x float64) { m.data[v*m.cols+r] = x }

// Sub deducts x from voter v in dimension r.
func (m *BudgetMatrix) Sub(v, r int, x float64) { m.data[v*m.cols+r] -= x }

// Row returns a view of voter v's budget vector; writes go through.
func (m *BudgetMatrix) Row(v int) []float64 {
	return m.data[v*m.cols : (v+1)*m.cols : (v+1)*m.cols]
}

// Zero empties voter v's budget in every dimension.
func (m *BudgetMatrix) Zero(v int) {
	row := m.Row(v)
	for r := range row {
		row[r] = 0
	}
}

// MaxOf returns the largest remaining amount voter v holds in any dimension.
func (m *BudgetMatrix) MaxOf(v int) float64 {
	row := m.Row(v)
	best := row[0]
	for _, x := range row[1:] {
		best = max(best, x)
	}

	return best
}

// ColumnSum returns Σ over voters of dimension r.
func (m *BudgetMatrix) ColumnSum(r int, voters []int) float64 {
	var s float64
	for _, v := range voters {
		s += m.data[v*m.cols+r]
	}

	return s
}

// Save copies the rows of voters so they can be restored later.
func (m *BudgetMatrix) Save(voters []int) [][]float64 {
	out := make([][]float64, len(voters))
	for i, v := range voters {
		out[i] = append([]float64(nil), m.Row(v)...)
	}

	return out
}

// Restore writes back rows captured by Save for the same voters slice.
func (m *BudgetMatrix) Restore(voters []int, saved [][]float64) {
	for i, v := range voters {
		copy(m.Row(v), saved[i])
	}
}

// Clone returns a deep copy.
func (m *BudgetMatrix) Clone() *BudgetMatrix {
	return &BudgetMatrix{rows: m.rows, cols: m.cols, data: append([]float64(nil), m.data...)}
}
