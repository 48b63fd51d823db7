package scene

import "github.com/gregzanch/rirtrace/internal/geom"

// Intersection is a world-space hit against the scene, carrying a live
// reference back to the node it hit (spec §3). Used only while a single
// trace_ray call is unwinding the recursive traversal.
type Intersection struct {
	T      float64
	Point  geom.Vec3
	Node   *Node
	Normal geom.Vec3
	U, V   float64
}

// OwningIntersection carries only the hit node's id rather than a live
// pointer, so a RayPath can cross goroutine boundaries and be stored
// without entangling the tracer's lifetime with the scene tree (spec §3,
// §9 "Scene graph ownership").
type OwningIntersection struct {
	T      float64
	Point  geom.Vec3
	NodeID uint32
	Normal geom.Vec3
	U, V   float64
}

// Owning strips the live node reference, keeping only its id.
func (i Intersection) Owning() OwningIntersection {
	return OwningIntersection{
		T:      i.T,
		Point:  i.Point,
		NodeID: i.Node.ID,
		Normal: i.Normal,
		U:      i.U,
		V:      i.V,
	}
}
