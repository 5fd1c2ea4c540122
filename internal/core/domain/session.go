package domain

// SessionPhase identifies which variant of the session state is active.
type SessionPhase int

// Session phases.
const (
	PhaseIdle SessionPhase = iota
	PhaseComputing
	PhaseReady
	PhaseNavigating
	PhaseFailed
)

// String returns the string representation.
func (p SessionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseComputing:
		return "computing"
	case PhaseReady:
		return "ready"
	case PhaseNavigating:
		return "navigating"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionState is a read-only snapshot of a navigation session.
//
// Result and Instructions are set only in Ready and Navigating.
// ActiveIndex is meaningful only in Navigating. Reason is set only in Failed.
type SessionState struct {
	Phase        SessionPhase
	Selection    RouteSelection
	Result       *RouteResult
	Instructions []Instruction
	ActiveIndex  int
	Reason       string
	VoiceEnabled bool
	LastFix      *Coordinate
}

// ActiveInstruction returns the instruction being followed, if navigating.
func (s SessionState) ActiveInstruction() (Instruction, bool) {
	if s.Phase != PhaseNavigating || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Instructions) {
		return Instruction{}, false
	}
	return s.Instructions[s.ActiveIndex], true
}

// VoiceCommand is a recognised spoken command.
type VoiceCommand int

// Voice commands.
const (
	VoiceUnknown VoiceCommand = iota
	VoiceStart
	VoiceStop
	VoiceMute
	VoiceEnable
	VoiceRepeat
)

// String returns the string representation.
func (c VoiceCommand) String() string {
	switch c {
	case VoiceStart:
		return "start"
	case VoiceStop:
		return "stop"
	case VoiceMute:
		return "mute"
	case VoiceEnable:
		return "enable"
	case VoiceRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}
