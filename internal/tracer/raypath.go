package tracer

import (
	"github.com/gregzanch/rirtrace/internal/geom"
	"github.com/gregzanch/rirtrace/internal/scene"
)

// RayPath is one successful ray that left the source and, within the order
// budget, reached the receiver. Hits are stored by node id rather than live
// *scene.Node pointers so a path survives past the worker goroutine that
// produced it (spec §3, §9 "Scene graph ownership").
type RayPath struct {
	Source   geom.Vec3
	Hits     []scene.OwningIntersection
	Distance float64
}

// TotalDistance sums the source-to-first-hit segment and every subsequent
// hit-to-hit segment (spec §4.T).
func (p RayPath) TotalDistance() float64 {
	total := 0.0
	for i, hit := range p.Hits {
		if i == 0 {
			total += hit.Point.Sub(p.Source).Length()
		} else {
			total += p.Hits[i].Point.Sub(p.Hits[i-1].Point).Length()
		}
	}
	return total
}

// TotalTime converts TotalDistance to an arrival time at the given speed of
// sound (spec §4.T, §6 "Speed of sound").
func (p RayPath) TotalTime(speedOfSound float64) float64 {
	return p.TotalDistance() / speedOfSound
}
