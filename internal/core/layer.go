package core

// ColliderID identifies a collider registered in a physics world.
// It is the contact handle returned by overlap queries.
type ColliderID int

// Layer is a collision layer index in [0, 31].
type Layer uint8

// Common layers used by the games.
const (
	LayerDefault Layer = iota
	LayerGround
	LayerObstacle
	LayerPickup
	LayerGoal
)

// LayerMask is a bit set of layers.
type LayerMask uint32

// MaskOf builds a mask containing the given layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Has reports whether the mask includes the layer.
func (m LayerMask) Has(l Layer) bool {
	return m&(1<<l) != 0
}
