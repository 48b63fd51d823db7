// Package tracer implements the stochastic path tracer: single-ray
// specular/diffuse bouncing (spec §4.T) and the embarrassingly parallel
// driver that fans it out across goroutines until enough rays reach the
// receiver (spec §4.T, §9 "Concurrency model").
package tracer

import (
	"math/rand/v2"

	"github.com/gregzanch/rirtrace/internal/geom"
	"github.com/gregzanch/rirtrace/internal/scene"
)

// scatterProbability is the chance that a bounce replaces the specular
// reflection with a random outward-facing direction (spec §4.T).
const scatterProbability = 0.1

// Tracer holds the immutable scene a render traces rays against.
type Tracer struct {
	Root       *scene.Node
	Source     geom.Vec3
	Receiver   uint32
	MaxOrder   uint32
	Scattering float64
}

// New builds a Tracer with the standard 0.1 scattering probability.
func New(root *scene.Node, source geom.Vec3, receiver uint32, maxOrder uint32) *Tracer {
	return &Tracer{Root: root, Source: source, Receiver: receiver, MaxOrder: maxOrder, Scattering: scatterProbability}
}

// TraceRay fires a single ray from the source in a random direction and
// bounces it, specularly by default and diffusely with probability
// Scattering, until it either reaches the receiver, exceeds MaxOrder
// bounces, or leaves the scene entirely. Reports ok=false in the latter two
// cases (spec §4.T).
func (t *Tracer) TraceRay(rng *rand.Rand) (RayPath, bool) {
	ray := geom.Ray{Origin: t.Source, Direction: randomUnitVector(rng)}
	hit, ok := t.Root.Intersects(ray)

	var hits []scene.OwningIntersection
	var order uint32
	reachedReceiver := false

	for order < t.MaxOrder && ok && !reachedReceiver {
		reachedReceiver = hit.Node.ID == t.Receiver

		direction := reflect(ray.Direction, hit.Normal)
		if probability(rng, t.Scattering) {
			direction = randomUnitVector(rng)
			if hit.Normal.Dot(direction) < 0 {
				direction = direction.Scale(-1)
			}
		}
		if !direction.IsFinite() {
			break
		}

		hits = append(hits, hit.Owning())
		ray = geom.Ray{Origin: hit.Point, Direction: direction}
		order++
		hit, ok = t.Root.Intersects(ray)
	}

	if !reachedReceiver {
		return RayPath{}, false
	}

	path := RayPath{Source: t.Source, Hits: hits}
	path.Distance = path.TotalDistance()
	return path, true
}

// reflect mirrors d about the plane with normal n and renormalizes.
func reflect(d, n geom.Vec3) geom.Vec3 {
	return d.Sub(n.Scale(2 * d.Dot(n))).Normalize()
}

// randomUnitVector samples a uniformly-cube-distributed direction and
// normalizes it (spec §4.T "random_vector3").
func randomUnitVector(rng *rand.Rand) geom.Vec3 {
	v := geom.Vec3{
		X: rng.Float64() - 0.5,
		Y: rng.Float64() - 0.5,
		Z: rng.Float64() - 0.5,
	}
	return v.Normalize()
}

func probability(rng *rand.Rand, p float64) bool {
	return rng.Float64() <= p
}
