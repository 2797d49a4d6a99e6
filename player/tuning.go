package player

import "github.com/jakecoffman/cp"

// TrailSize is the number of positions kept for the ribbon.
const TrailSize = 60

// Tuning holds the motion constants. Speeds are in scale units per second,
// distances in pixels, durations in seconds. Y grows downward, so the jump
// impulse is negative.
type Tuning struct {
	TeleportDuration   float64 `yaml:"teleport_duration"`
	JumpHeight         float64 `yaml:"jump_height"`
	LinearUpDuration   float64 `yaml:"linear_up_duration"`
	LinearDownDuration float64 `yaml:"linear_down_duration"`
	Impulse            float64 `yaml:"impulse"`
	Gravity            float64 `yaml:"gravity"`

	SquashDown    cp.Vector `yaml:"squash_down"`
	SquashUp      cp.Vector `yaml:"squash_up"`
	SquashReceipt cp.Vector `yaml:"squash_receipt"`

	SquashNormalSpeed  float64 `yaml:"squash_normal_speed"`
	SquashDownSpeed    float64 `yaml:"squash_down_speed"`
	SquashUpSpeed      float64 `yaml:"squash_up_speed"`
	SquashReceiptSpeed float64 `yaml:"squash_receipt_speed"`

	// LandingSpeed is the fall speed at which the squash is fully relaxed.
	LandingSpeed float64 `yaml:"landing_speed"`

	TrailWidth float64 `yaml:"trail_width"`
}

// DefaultTuning returns the demo's motion constants.
func DefaultTuning() Tuning {
	return Tuning{
		TeleportDuration:   0.75,
		JumpHeight:         190,
		LinearUpDuration:   0.5,
		LinearDownDuration: 0.5,
		Impulse:            -750,
		Gravity:            1500,

		SquashDown:    cp.Vector{X: 2, Y: 0.5},
		SquashUp:      cp.Vector{X: 0.75, Y: 1.75},
		SquashReceipt: cp.Vector{X: 1.5, Y: 0.75},

		SquashNormalSpeed:  10,
		SquashDownSpeed:    10,
		SquashUpSpeed:      8,
		SquashReceiptSpeed: 8,

		LandingSpeed: 50,
		TrailWidth:   30,
	}
}
