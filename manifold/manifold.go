// Package manifold builds contact manifolds from SAT query results: a
// Sutherland-Hodgman clip for face contacts, and a closest-points-between-
// segments construction for edge contacts. Results use value types
// throughout, an error-free nil return for "no contact", and small
// stack-sized scratch slices.
package manifold

import (
	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/math32"
	"github.com/polyhull/collide/sat"
)

// FeaturePair identifies the half-edges that produced a contact point: the
// clipping/reference edge and the source edge on each hull, or -1 when a
// side has no contributing edge (e.g. an original incident-polygon vertex
// that survived clipping untouched). Field names follow the hull/hull2
// convention; Build keeps this convention consistent regardless of
// which hull was chosen as the SAT reference.
type FeaturePair struct {
	In1, Out1 int
	In2, Out2 int
}

// Key packs the feature pair into a single comparable value for use as a
// map key in a persistent-contact cache. Edge indices fit comfortably in
// int16 (a hull with more than 32767 half-edges is outside any realistic
// use of this core), so the four fields pack losslessly into a uint64.
func (f FeaturePair) Key() uint64 {

	pack := func(v int) uint64 { return uint64(uint16(int16(v))) }
	return pack(f.In1) | pack(f.Out1)<<16 | pack(f.In2)<<32 | pack(f.Out2)<<48
}

func (f FeaturePair) swapped() FeaturePair {

	return FeaturePair{In1: f.In2, Out1: f.Out2, In2: f.In1, Out2: f.Out1}
}

// ContactPoint is one point of a contact manifold.
type ContactPoint struct {
	Position math32.Vector3
	Distance float32
	Feature  FeaturePair

	// Impulse and Tangent are accumulators for an external solver; always
	// zero at emit time.
	Impulse float32
	Tangent [2]float32
}

// Manifold is the result of a narrowphase contact query: a unit normal
// pointing from hull 1 toward hull 2, plus the contact points.
type Manifold struct {
	Normal math32.Vector3
	Points []ContactPoint
}

// Build runs SAT (face query both ways, edge query) between hull1 and
// hull2, applies reference-selection hysteresis to favor a face contact
// over an edge contact, and returns the resulting manifold, or nil if the
// hulls are separated. cfg supplies the selection tolerances and the
// manifold point cap.
func Build(t1 *math32.Transform, h1 *hull.Hull, t2 *math32.Transform, h2 *hull.Hull, cfg *config.Config) *Manifold {

	face1 := sat.QueryFaceDistance(t1, h1, t2, h2)
	if face1.Distance > 0 {
		return nil
	}
	face2 := sat.QueryFaceDistance(t2, h2, t1, h1)
	if face2.Distance > 0 {
		return nil
	}
	edge := sat.QueryEdgeDistance(t1, h1, t2, h2)
	if edge.Distance > 0 {
		return nil
	}

	maxFace := face1.Distance
	if face2.Distance > maxFace {
		maxFace = face2.Distance
	}

	if edge.Distance > cfg.RelEdgeTol*maxFace+cfg.AbsTol {
		log.Debug("edge contact: edges %d/%d, distance %f", edge.Edge1, edge.Edge2, edge.Distance)
		return buildEdgeContact(t1, h1, edge.Edge1, t2, h2, edge.Edge2, edge.Distance)
	}

	if face2.Distance > cfg.RelFaceTol*face1.Distance+cfg.AbsTol {
		log.Debug("face contact: hull2 face %d reference", face2.FaceIndex)
		return buildFaceContact(t2, h2, face2.FaceIndex, t1, h1, cfg, false)
	}
	log.Debug("face contact: hull1 face %d reference", face1.FaceIndex)
	return buildFaceContact(t1, h1, face1.FaceIndex, t2, h2, cfg, true)
}

type sidePlane struct {
	Normal math32.Vector3
	Offset float32
	EdgeID int
}

func signedDistance(p sidePlane, point *math32.Vector3) float32 {

	return p.Normal.Dot(point) - p.Offset
}

// buildSidePlanes builds one clip plane per edge of the reference face,
// oriented outward from the face and carrying the twin edge id for
// feature-pair tracking.
func buildSidePlanes(t *math32.Transform, h *hull.Hull, face int) []sidePlane {

	refNormal := h.TransformPlane(t, face).Normal
	var planes []sidePlane

	h.WalkFace(face, func(e int) bool {
		he := h.Edge(e)
		next := h.Edge(he.Next)
		p := h.WorldVertex(t, he.Origin)
		q := h.WorldVertex(t, next.Origin)

		dir := math32.NewVec3().SubVectors(&q, &p)
		normal := math32.NewVec3().CrossVectors(dir, &refNormal)
		normal.Normalize()

		planes = append(planes, sidePlane{
			Normal: *normal,
			Offset: normal.Dot(&p),
			EdgeID: h.Twin(e),
		})
		return true
	})
	return planes
}

type clipVertex struct {
	Pos     math32.Vector3
	Feature FeaturePair
}

// buildIncidentPolygon walks the incident face's half-edges, attaching the
// provisional feature pair each vertex carries before any clipping.
func buildIncidentPolygon(t *math32.Transform, h *hull.Hull, face int) []clipVertex {

	var poly []clipVertex
	h.WalkFace(face, func(e int) bool {
		he := h.Edge(e)
		pos := h.WorldVertex(t, he.Origin)
		poly = append(poly, clipVertex{
			Pos:     pos,
			Feature: FeaturePair{In1: -1, Out1: -1, In2: he.Next, Out2: e},
		})
		return true
	})
	return poly
}

// selectIncidentFace picks the face of h whose world-space plane normal is
// most anti-parallel to refNormal.
func selectIncidentFace(t *math32.Transform, h *hull.Hull, refNormal *math32.Vector3) int {

	best := -1
	bestDot := math32.Inf(1)
	for i := 0; i < h.FaceCount(); i++ {
		n := h.TransformPlane(t, i).Normal
		d := refNormal.Dot(&n)
		if d < bestDot {
			bestDot = d
			best = i
		}
	}
	return best
}

// clipAgainstPlane runs one Sutherland-Hodgman clip pass of poly against a
// single side plane.
func clipAgainstPlane(poly []clipVertex, plane sidePlane) []clipVertex {

	if len(poly) == 0 {
		return nil
	}

	out := make([]clipVertex, 0, len(poly)+1)
	v1 := poly[len(poly)-1]
	d1 := signedDistance(plane, &v1.Pos)

	for _, v2 := range poly {
		d2 := signedDistance(plane, &v2.Pos)

		switch {
		case d1 <= 0 && d2 <= 0:
			out = append(out, v2)

		case d1 <= 0 && d2 > 0:
			t := d1 / (d1 - d2)
			pos := lerpPoint(&v1.Pos, &v2.Pos, t)
			out = append(out, clipVertex{
				Pos:     pos,
				Feature: FeaturePair{In1: -1, Out1: plane.EdgeID, In2: v1.Feature.Out2, Out2: -1},
			})

		case d2 <= 0 && d1 > 0:
			t := d1 / (d1 - d2)
			pos := lerpPoint(&v1.Pos, &v2.Pos, t)
			out = append(out, clipVertex{
				Pos:     pos,
				Feature: FeaturePair{In1: plane.EdgeID, Out1: -1, In2: -1, Out2: v1.Feature.Out2},
			})
			out = append(out, v2)
		}

		v1, d1 = v2, d2
	}
	return out
}

func lerpPoint(a, b *math32.Vector3, t float32) math32.Vector3 {

	out := *a
	diff := math32.NewVec3().SubVectors(b, a)
	diff.MultiplyScalar(t)
	out.Add(diff)
	return out
}

// buildFaceContact clips refHull's refFace-incident-on-incHull polygon and
// emits a face manifold. refIsHull1 records whether refHull is the caller's
// physical hull 1, so the returned feature pairs and normal stay in the
// caller's 1/2 convention regardless of which hull SAT picked as reference.
func buildFaceContact(refT *math32.Transform, refHull *hull.Hull, refFace int,
	incT *math32.Transform, incHull *hull.Hull, cfg *config.Config, refIsHull1 bool) *Manifold {

	refPlane := refHull.TransformPlane(refT, refFace)
	incFace := selectIncidentFace(incT, incHull, &refPlane.Normal)

	poly := buildIncidentPolygon(incT, incHull, incFace)
	for _, plane := range buildSidePlanes(refT, refHull, refFace) {
		poly = clipAgainstPlane(poly, plane)
		if len(poly) == 0 {
			return nil
		}
	}

	points := make([]ContactPoint, 0, len(poly))
	for _, v := range poly {
		dist := refPlane.Normal.Dot(&v.Pos) - refPlane.Offset
		if dist > 0 {
			continue
		}
		proj := v.Pos
		offset := refPlane.Normal
		offset.MultiplyScalar(dist)
		proj.Sub(&offset)

		feature := v.Feature
		if !refIsHull1 {
			feature = feature.swapped()
		}
		points = append(points, ContactPoint{Position: proj, Distance: dist, Feature: feature})
		if len(points) >= cfg.ManifoldMaxPoints {
			break
		}
	}
	if len(points) == 0 {
		return nil
	}

	normal := refPlane.Normal
	if !refIsHull1 {
		normal.Negate()
	}
	return &Manifold{Normal: normal, Points: points}
}

// buildEdgeContact builds a single-point manifold from the witness edge
// pair found by the edge query, using the standard closest-points-between-
// two-lines construction (D1, D2, D12, DNM naming follows the source
// formulation: D1/D2 are squared edge lengths, D12 the edge-direction dot
// product, DE1P1/DE2P1 the projections of the inter-origin vector).
func buildEdgeContact(t1 *math32.Transform, h1 *hull.Hull, e1 int,
	t2 *math32.Transform, h2 *hull.Hull, e2 int, distance float32) *Manifold {

	he1 := h1.Edge(e1)
	p1 := h1.WorldVertex(t1, he1.Origin)
	q1 := h1.WorldVertex(t1, h1.Edge(h1.Twin(e1)).Origin)

	he2 := h2.Edge(e2)
	p2 := h2.WorldVertex(t2, he2.Origin)
	q2 := h2.WorldVertex(t2, h2.Edge(h2.Twin(e2)).Origin)

	E1 := math32.NewVec3().SubVectors(&q1, &p1)
	E2 := math32.NewVec3().SubVectors(&q2, &p2)
	r := math32.NewVec3().SubVectors(&p1, &p2)

	D1 := E1.Dot(E1)
	D2 := E2.Dot(E2)
	D12 := E1.Dot(E2)
	DE1P1 := E1.Dot(r)
	DE2P1 := E2.Dot(r)

	DNM := D1*D2 - D12*D12
	if DNM == 0 {
		return nil
	}
	F1 := (D12*DE2P1 - DE1P1*D2) / DNM
	F2 := (D12*F1 + DE2P1) / D2

	c1 := p1
	d1 := *E1
	d1.MultiplyScalar(F1)
	c1.Add(&d1)

	c2 := p2
	d2 := *E2
	d2.MultiplyScalar(F2)
	c2.Add(&d2)

	pos := c1
	pos.Add(&c2)
	pos.MultiplyScalar(0.5)

	normal := math32.NewVec3().CrossVectors(E1, E2)
	if normal.Length() == 0 {
		return nil
	}
	normal.Normalize()

	centerDiff := math32.NewVec3().SubVectors(&t2.Pos, &t1.Pos)
	if normal.Dot(centerDiff) < 0 {
		normal.Negate()
	}

	feature := FeaturePair{In1: e1, Out1: h1.Twin(e1), In2: e2, Out2: h2.Twin(e2)}
	return &Manifold{
		Normal: *normal,
		Points: []ContactPoint{{Position: pos, Distance: distance, Feature: feature}},
	}
}
