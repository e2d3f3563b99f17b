package wfc

import (
	"github.com/Faultbox/slenderish/pkg/heapmap"
)

// Violation is an adjacent pair whose shared edge does not fit.
type Violation struct {
	A, B TileCell
	// Side is the side of A that B lies on.
	Side Orientation
}

// AuditReport summarises the adjacency of a solved grid.
type AuditReport struct {
	Pairs      int
	Violations []Violation
}

// Rate returns the fraction of adjacent pairs that do not fit.
func (r AuditReport) Rate() float64 {
	if r.Pairs == 0 {
		return 0
	}
	return float64(len(r.Violations)) / float64(r.Pairs)
}

// Audit checks every horizontally and vertically adjacent pair of cells.
func (t *ConnectionTable) Audit(cells []TileCell) AuditReport {
	byKey := make(map[heapmap.Key]TileCell, len(cells))
	for _, c := range cells {
		byKey[heapmap.Key{X: c.X, Y: c.Z}] = c
	}

	var report AuditReport
	for _, a := range cells {
		for _, n := range []struct {
			side Orientation
			key  heapmap.Key
		}{
			{Right, heapmap.Key{X: a.X + 1, Y: a.Z}},
			{Top, heapmap.Key{X: a.X, Y: a.Z + 1}},
		} {
			b, ok := byKey[n.key]
			if !ok {
				continue
			}
			report.Pairs++
			if !t.Compatible(a.ID, b.ID, n.side) || !t.Compatible(b.ID, a.ID, n.side.Invert()) {
				report.Violations = append(report.Violations, Violation{A: a, B: b, Side: n.side})
			}
		}
	}
	return report
}
