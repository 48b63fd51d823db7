// Package scene implements the hierarchical transformed scene graph and its
// closest-hit ray traversal (spec §4.S). Nodes are built once by the loader
// and never mutated while a render is in flight, which is what lets many
// tracer goroutines call Intersects concurrently without locking.
package scene

import (
	"github.com/gregzanch/rirtrace/internal/acoustics"
	"github.com/gregzanch/rirtrace/internal/geom"
)

// Node is one entry in the scene tree (spec §3). Invariant: InvTransform is
// always Transform.Inverse() — every mutator below recomputes both.
type Node struct {
	ID        uint32
	Name      string
	Primitive geom.Primitive
	Material  acoustics.Material

	Transform    geom.Transform
	InvTransform geom.Transform

	Children []*Node
}

// NewNode builds an empty interior node: no primitive, identity transform,
// default (nearly-total-absorption-free) material.
func NewNode(id uint32, name string) *Node {
	return &Node{
		ID:           id,
		Name:         name,
		Primitive:    geom.NonePrimitive{},
		Material:     acoustics.DefaultMaterial(),
		Transform:    geom.Identity(),
		InvTransform: geom.Identity(),
	}
}

// AddChild appends a child node. Children are owned by their parent (tree,
// not DAG); the same *Node must never be added twice.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// SetTransform replaces the node's transform and recomputes its inverse.
func (n *Node) SetTransform(t geom.Transform) {
	n.Transform = t
	n.InvTransform = t.Inverse()
}

// ApplyTransform composes t onto the node's current transform (new = t *
// current), recomputing the inverse.
func (n *Node) ApplyTransform(t geom.Transform) {
	n.SetTransform(t.Mul(n.Transform))
}

// Translate applies a translation on top of the node's current transform.
func (n *Node) Translate(v geom.Vec3) {
	n.ApplyTransform(geom.Translation(v))
}

// Scale applies a non-uniform scale on top of the node's current transform.
func (n *Node) Scale(v geom.Vec3) {
	n.ApplyTransform(geom.Scaling(v))
}

// FindByID searches the subtree rooted at n (depth-first, self first) for a
// node with the given id.
func (n *Node) FindByID(id uint32) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Intersects performs the closest-hit traversal described in spec §4.S:
//  1. Transform the ray into local coordinates via InvTransform.
//  2. Collide the local primitive, if any.
//  3. Recurse into every child with the same local ray.
//  4. Pick the candidate (self or a child) with the smallest squared
//     distance from the local ray origin; ties favor the earlier candidate
//     (self, then children in insertion order).
//  5. Transform the winning hit back out to world space.
//
// Read-only and reentrant: safe to call concurrently from many tracer
// goroutines as long as the tree itself is not being mutated.
func (n *Node) Intersects(ray geom.Ray) (Intersection, bool) {
	local := ray.Transform(n.InvTransform)

	var best Intersection
	haveBest := false
	bestDistSq := 0.0

	if hit, ok := n.Primitive.Collide(local); ok && hit.Point.IsFinite() && hit.Normal.IsFinite() {
		best = Intersection{T: hit.T, Point: hit.Point, Node: n, Normal: hit.Normal, U: hit.U, V: hit.V}
		bestDistSq = geom.DistanceSquared(local.Origin, hit.Point)
		haveBest = true
	}

	for _, child := range n.Children {
		hit, ok := child.Intersects(local)
		if !ok {
			continue
		}
		d := geom.DistanceSquared(local.Origin, hit.Point)
		if !haveBest || d < bestDistSq {
			best = hit
			bestDistSq = d
			haveBest = true
		}
	}

	if !haveBest {
		return Intersection{}, false
	}

	return transformOut(best, n.Transform, n.InvTransform), true
}

// transformOut carries a local-frame hit back out by the node's forward
// transform, renormalizing the normal via the transpose of the inverse
// transform's linear part, i.e. the inverse-transpose of the forward linear
// part (spec §4.S step 5).
func transformOut(hit Intersection, t, invT geom.Transform) Intersection {
	invTranspose := geom.InverseTranspose3x3(invT.Linear3x3())
	hit.Point = t.Apply(hit.Point)
	hit.Normal = geom.ApplyNormalInverseTranspose(invTranspose, hit.Normal)
	return hit
}
