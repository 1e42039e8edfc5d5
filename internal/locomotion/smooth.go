package locomotion

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// minSmoothTime keeps omega finite when smoothing is disabled.
const minSmoothTime = 0.0001

// SmoothDamp moves current toward target with a critically damped spring.
// velocity is the filter's derivative state and must persist between calls.
// maxSpeed caps the rate of change; pass math.Inf(1) for no cap.
//
// Uses the polynomial approximation of exp(-x) from Game Programming Gems 4,
// ch. 1.10, and clamps the result so it never passes the target.
func SmoothDamp(current, target core.Vec2, velocity *core.Vec2, smoothTime, maxSpeed, dt float64) core.Vec2 {
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	originalTo := target

	maxChange := maxSpeed * smoothTime
	if sq := change.Dot(change); !math.IsInf(maxChange, 1) && sq > maxChange*maxChange {
		change = change.Scale(maxChange / math.Sqrt(sq))
	}
	target = current.Sub(change)

	temp := velocity.Add(change.Scale(omega)).Scale(dt)
	*velocity = velocity.Sub(temp.Scale(omega)).Scale(decay)

	output := target.Add(change.Add(temp).Scale(decay))

	// Overshoot guard
	if originalTo.Sub(current).Dot(output.Sub(originalTo)) > 0 {
		output = originalTo
		*velocity = output.Sub(originalTo).Scale(1 / dt)
	}

	return output
}
