package systems

// TickClock converts wall-clock time into a monotonically increasing
// CurrentTick at a target rate, with a configurable speed multiplier.
// Grounded on the teacher's DT-accumulator pattern in
// game/simulation.go, generalized from a fixed 60Hz physics step to a
// configurable tick period with a hard per-frame cap.
type TickClock struct {
	period float64 // seconds per tick
	maxTicksPerFrame int

	accumulator float64
	speed       float64

	CurrentTick uint64
	ShouldTick  bool // one-shot: true only on the frame that produced a tick
}

// NewTickClock creates a clock ticking once every period seconds, never
// producing more than maxTicksPerFrame ticks in a single Accumulate call —
// this caps accumulator drift on a slow frame instead of queuing a burst
// of ticks later.
func NewTickClock(period float64, maxTicksPerFrame int) *TickClock {
	if maxTicksPerFrame <= 0 {
		maxTicksPerFrame = 8
	}
	return &TickClock{
		period:           period,
		maxTicksPerFrame: maxTicksPerFrame,
		speed:            1.0,
	}
}

// SetSpeed sets the accumulator multiplier. Zero pauses the clock.
func (c *TickClock) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	c.speed = speed
}

// Speed returns the current speed multiplier.
func (c *TickClock) Speed() float64 {
	return c.speed
}

// Accumulate adds deltaRealTime*speed to the accumulator and advances
// CurrentTick by one for every full period consumed, up to
// maxTicksPerFrame. Returns the number of ticks produced this call.
func (c *TickClock) Accumulate(deltaRealTime float64) int {
	c.ShouldTick = false
	if c.speed == 0 || c.period <= 0 {
		return 0
	}

	c.accumulator += deltaRealTime * c.speed

	// tickEpsilon absorbs floating-point error, so remainders that add up to
	// one period (0.25s then 0.05s at 0.1s per tick) still produce a tick.
	const tickEpsilon = 1e-9

	produced := 0
	for c.accumulator+tickEpsilon >= c.period && produced < c.maxTicksPerFrame {
		c.accumulator -= c.period
		if c.accumulator < 0 {
			c.accumulator = 0
		}
		c.CurrentTick++
		produced++
	}

	// Cap drift: if the frame was so slow it would need more ticks than
	// the cap allows, drop the excess instead of queuing a burst later.
	if produced == c.maxTicksPerFrame && c.accumulator+tickEpsilon >= c.period {
		c.accumulator = 0
	}

	c.ShouldTick = produced > 0
	return produced
}
