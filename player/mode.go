package player

// Mode selects the per-phase motion math. Changing it never resets the
// current phase, timer or velocity.
type Mode int

const (
	ModeTeleport Mode = iota
	ModeLinear
	ModeGravity
	ModeGravitySquash
	ModeGravitySquashFX

	modeCount
)

var modeNames = [modeCount]string{
	"teleport",
	"linear",
	"gravity",
	"gravity + squash",
	"gravity + squash + fx",
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode { return (m + 1) % modeCount }

// Prev returns the previous mode, wrapping around.
func (m Mode) Prev() Mode { return (m - 1 + modeCount) % modeCount }

func (m Mode) gravity() bool { return m >= ModeGravity }
func (m Mode) squash() bool  { return m == ModeGravitySquash || m == ModeGravitySquashFX }

// Phase is the state of the jump cycle.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseJumpDown
	PhaseAscend
	PhaseFall
	PhaseReceipt
)

func (p Phase) String() string {
	switch p {
	case PhaseNormal:
		return "normal"
	case PhaseJumpDown:
		return "jump down"
	case PhaseAscend:
		return "ascend"
	case PhaseFall:
		return "fall"
	case PhaseReceipt:
		return "receipt"
	}
	return "unknown"
}
