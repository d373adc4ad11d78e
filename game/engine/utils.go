package engine

import "time"

// SpeedStep is one point on a configuration's speed curve
type SpeedStep struct {
	Length   int           `json:"length"`
	Interval time.Duration `json:"interval"`
}

// LengthAtFloor returns the first snake length whose tick interval is the minimum interval,
// or -1 if the speed never changes
func LengthAtFloor(config *GameConfig) int {
	if config.SpeedupPerSegmentMs <= 0 {
		if config.TurnIntervalMs <= config.MinIntervalMs {
			return 1
		}
		return -1
	}
	gap := config.TurnIntervalMs - config.MinIntervalMs
	if gap <= 0 {
		return 1
	}
	// ceil(gap / speedup) segments past the head
	return 1 + (gap+config.SpeedupPerSegmentMs-1)/config.SpeedupPerSegmentMs
}

// SpeedCurve lists the tick interval for lengths 1..maxLength, stopping once the floor is hit
func SpeedCurve(config *GameConfig, maxLength int) []SpeedStep {
	var steps []SpeedStep
	floor := time.Duration(config.MinIntervalMs) * time.Millisecond
	for length := 1; length <= maxLength; length++ {
		interval := config.TickInterval(length)
		steps = append(steps, SpeedStep{Length: length, Interval: interval})
		if interval <= floor {
			break
		}
	}
	return steps
}

// TimeToLength sums the move intervals needed to grow from length 1 to target,
// assuming one food eaten per move
func TimeToLength(config *GameConfig, target int) time.Duration {
	var total time.Duration
	for length := 1; length < target; length++ {
		total += config.TickInterval(length)
	}
	return total
}
