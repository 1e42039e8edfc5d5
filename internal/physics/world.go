// Package physics provides a small kinematic tile world on top of a resolv
// space: static colliders tagged by layer, circle and box overlap queries,
// and bodies integrated under gravity with per-axis contact resolution.
//
// It implements the capabilities consumed by the locomotion controller:
// World answers overlap queries, Body takes velocity commands and impulses.
package physics

import (
	"math"
	"slices"
	"strconv"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Space coordinates are world units scaled by pixelsPerUnit and shifted so
// that Config.Bounds.Min is the space origin. One space cell is one unit.
const (
	pixelsPerUnit = 64
	cellSize      = pixelsPerUnit
)

// Tags for space objects that are not static colliders.
const (
	tagBody  = "body"
	tagQuery = "query"
)

// Config holds world-wide simulation parameters.
type Config struct {
	Gravity         float64 // Downward acceleration in units/s² (positive value)
	GravityModifier float64 // Multiplier applied to Gravity at world creation; 0 means 1
	MaxFallSpeed    float64 // Terminal falling speed; 0 disables the clamp
	SolidMask       core.LayerMask

	// Bounds is the region where collisions happen. Colliders and bodies
	// outside it are ignored by every query.
	Bounds core.Box
}

// DefaultConfig returns a world tuned for a cell-sized character.
func DefaultConfig() Config {
	return Config{
		Gravity:         30,
		GravityModifier: 1,
		MaxFallSpeed:    20,
		SolidMask:       core.MaskOf(core.LayerGround),
		Bounds:          core.NewBox(-64, -16, 192, 96),
	}
}

// EffectiveGravity returns the gravity after the modifier is applied.
func (c Config) EffectiveGravity() float64 {
	mod := c.GravityModifier
	if mod == 0 {
		mod = 1
	}
	return c.Gravity * mod
}

// World owns static colliders and dynamic bodies.
type World struct {
	cfg       Config
	gravity   float64
	space     *resolv.Space
	query     *resolv.Object
	statics   map[core.ColliderID]*resolv.Object
	nextID    core.ColliderID
	solidTags []string
	bodies    []*Body
}

// NewWorld creates an empty world. Gravity is fixed for the world's lifetime.
func NewWorld(cfg Config) *World {
	if cfg.Bounds.Width() <= 0 || cfg.Bounds.Height() <= 0 {
		cfg.Bounds = DefaultConfig().Bounds
	}

	cols := int(math.Ceil(cfg.Bounds.Width()))
	rows := int(math.Ceil(cfg.Bounds.Height()))

	w := &World{
		cfg:       cfg,
		gravity:   cfg.EffectiveGravity(),
		space:     resolv.NewSpace(cols*cellSize, rows*cellSize, cellSize, cellSize),
		query:     resolv.NewObject(0, 0, 1, 1, tagQuery),
		statics:   make(map[core.ColliderID]*resolv.Object),
		solidTags: maskTags(cfg.SolidMask),
	}
	w.space.Add(w.query)
	return w
}

// Gravity returns the effective downward acceleration.
func (w *World) Gravity() float64 {
	return w.gravity
}

// Bounds returns the collision region.
func (w *World) Bounds() core.Box {
	return w.cfg.Bounds
}

func layerTag(l core.Layer) string {
	return "layer" + strconv.Itoa(int(l))
}

func maskTags(m core.LayerMask) []string {
	var tags []string
	for l := core.Layer(0); l < 32; l++ {
		if m.Has(l) {
			tags = append(tags, layerTag(l))
		}
	}
	return tags
}

func (w *World) toSpace(b core.Box) (x, y, width, height float64) {
	o := b.Min.Sub(w.cfg.Bounds.Min).Scale(pixelsPerUnit)
	return o.X, o.Y, b.Width() * pixelsPerUnit, b.Height() * pixelsPerUnit
}

func (w *World) fromSpace(o *resolv.Object) core.Box {
	return core.NewBox(o.X/pixelsPerUnit, o.Y/pixelsPerUnit, o.W/pixelsPerUnit, o.H/pixelsPerUnit).
		Translate(w.cfg.Bounds.Min)
}

func (w *World) place(o *resolv.Object, b core.Box) {
	o.X, o.Y, o.W, o.H = w.toSpace(b)
	o.Update()
}

// AddStatic registers a static collider and returns its handle.
func (w *World) AddStatic(box core.Box, layer core.Layer) core.ColliderID {
	w.nextID++
	id := w.nextID

	x, y, bw, bh := w.toSpace(box)
	obj := resolv.NewObject(x, y, bw, bh, layerTag(layer))
	obj.Data = id
	w.space.Add(obj)
	w.statics[id] = obj
	return id
}

// MoveStatic repositions a static collider.
func (w *World) MoveStatic(id core.ColliderID, box core.Box) {
	if obj, ok := w.statics[id]; ok {
		w.place(obj, box)
	}
}

// RemoveStatic removes a static collider. Handles are never reused.
func (w *World) RemoveStatic(id core.ColliderID) {
	if obj, ok := w.statics[id]; ok {
		w.space.Remove(obj)
		delete(w.statics, id)
	}
}

// StaticBox returns the box of a live static collider.
func (w *World) StaticBox(id core.ColliderID) (core.Box, bool) {
	obj, ok := w.statics[id]
	if !ok {
		return core.Box{}, false
	}
	return w.fromSpace(obj), true
}

// StaticCount returns the number of live static colliders.
func (w *World) StaticCount() int {
	return len(w.statics)
}

// candidates returns the static colliders on mask whose space cells touch
// b. The query box is padded by a pixel because resolv trims the far edge of
// an object's bounds when mapping it to cells.
func (w *World) candidates(b core.Box, mask core.LayerMask) []*resolv.Object {
	tags := maskTags(mask)
	if len(tags) == 0 {
		return nil
	}

	x, y, bw, bh := w.toSpace(b)
	w.query.X, w.query.Y, w.query.W, w.query.H = x-1, y-1, bw+2, bh+2
	w.query.Update()

	hit := w.query.Check(0, 0, tags...)
	if hit == nil {
		return nil
	}
	return hit.Objects
}

// collect returns the IDs of the objects whose box passes keep, in
// registration order.
func (w *World) collect(objs []*resolv.Object, keep func(core.Box) bool) []core.ColliderID {
	var hits []core.ColliderID
	for _, o := range objs {
		id, ok := o.Data.(core.ColliderID)
		if ok && keep(w.fromSpace(o)) {
			hits = append(hits, id)
		}
	}
	slices.Sort(hits)
	return hits
}

// OverlapCircleAll returns the static colliders on mask that touch the
// circle, in registration order. Bodies are never reported.
func (w *World) OverlapCircleAll(center core.Vec2, radius float64, mask core.LayerMask) []core.ColliderID {
	area := core.NewBox(center.X-radius, center.Y-radius, 2*radius, 2*radius)
	return w.collect(w.candidates(area, mask), func(b core.Box) bool {
		return b.IntersectsCircle(center, radius)
	})
}

// OverlapBox returns the static colliders on mask whose box overlaps b.
func (w *World) OverlapBox(b core.Box, mask core.LayerMask) []core.ColliderID {
	return w.collect(w.candidates(b, mask), func(o core.Box) bool {
		return o.Overlaps(b)
	})
}

// AddBody places a new body with its feet at pos.
func (w *World) AddBody(pos core.Vec2, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	b := &Body{
		pos:   pos,
		mass:  mass,
		scale: core.V2(1, 1),
		obj:   resolv.NewObject(0, 0, 1, 1, tagBody),
	}
	w.space.Add(b.obj)
	w.bodies = append(w.bodies, b)
	return b
}

// Step integrates all bodies by dt seconds.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		w.integrate(b, dt)
	}
}

func (w *World) integrate(b *Body, dt float64) {
	b.vel.Y -= w.gravity * dt
	if w.cfg.MaxFallSpeed > 0 && b.vel.Y < -w.cfg.MaxFallSpeed {
		b.vel.Y = -w.cfg.MaxFallSpeed
	}

	local, ok := b.localBounds()
	if !ok {
		b.pos = b.pos.Add(b.vel.Scale(dt))
		return
	}

	obj := b.obj
	w.place(obj, local.Translate(b.pos))
	w.separate(b)

	if dx := b.vel.X * dt * pixelsPerUnit; dx != 0 {
		if contact, hit := w.sweep(obj, dx, 0); hit {
			dx = contact
			b.vel.X = 0
		}
		obj.X += dx
		obj.Update()
	}

	if dy := b.vel.Y * dt * pixelsPerUnit; dy != 0 {
		if contact, hit := w.sweep(obj, 0, dy); hit {
			dy = contact
			b.vel.Y = 0
		}
		obj.Y += dy
		obj.Update()
	}

	b.pos = w.fromSpace(obj).Min.Sub(local.Min)
}

// sweep reports how far obj may travel by (dx, dy) pixels along one axis
// before touching a solid.
func (w *World) sweep(obj *resolv.Object, dx, dy float64) (float64, bool) {
	if len(w.solidTags) == 0 {
		return 0, false
	}

	// Reach one pixel further so the trimmed leading edge still sees
	// solids it would sink into by less than a pixel.
	hit := obj.Check(reach(dx), reach(dy), w.solidTags...)
	if hit == nil {
		return 0, false
	}

	moved := w.fromSpace(obj).Translate(core.V2(dx, dy).Scale(1.0 / pixelsPerUnit))

	best, found := 0.0, false
	for _, o := range hit.Objects {
		if !moved.Overlaps(w.fromSpace(o)) {
			continue
		}
		contact := hit.ContactWithObject(o)
		d := contact.X()
		if dy != 0 {
			d = contact.Y()
		}
		if !found || math.Abs(d) < math.Abs(best) {
			best, found = d, true
		}
	}
	return best, found
}

// separate pushes the body out of solids it already overlaps, such as a
// collider enabled under a ceiling, along the axis of least penetration.
func (w *World) separate(b *Body) {
	for _, o := range w.candidates(w.fromSpace(b.obj), w.cfg.SolidMask) {
		box, solid := w.fromSpace(b.obj), w.fromSpace(o)
		if !box.Overlaps(solid) {
			continue
		}

		push := minimumTranslation(box, solid)
		if b.vel.X*push.X < 0 {
			b.vel.X = 0
		}
		if b.vel.Y*push.Y < 0 {
			b.vel.Y = 0
		}
		b.obj.X += push.X * pixelsPerUnit
		b.obj.Y += push.Y * pixelsPerUnit
		b.obj.Update()
	}
}

// minimumTranslation returns the shortest axis-aligned move that takes a
// out of b. Ties prefer pushing up, then sideways.
func minimumTranslation(a, b core.Box) core.Vec2 {
	push := core.V2(0, b.Max.Y-a.Min.Y)
	best := push.Y

	if d := a.Max.X - b.Min.X; d < best {
		push, best = core.V2(-d, 0), d
	}
	if d := b.Max.X - a.Min.X; d < best {
		push, best = core.V2(d, 0), d
	}
	if d := a.Max.Y - b.Min.Y; d < best {
		push = core.V2(0, -d)
	}
	return push
}

func reach(d float64) float64 {
	switch {
	case d > 0:
		return d + 1
	case d < 0:
		return d - 1
	}
	return 0
}
