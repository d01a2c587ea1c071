package player

// Origin tags which side of the bridge a transport command came from
type Origin int

const (
	OriginPrimary Origin = iota
	OriginWaveform
)

// String returns the origin name
func (o Origin) String() string {
	if o == OriginWaveform {
		return "waveform"
	}
	return "primary"
}

// Command is a closed set of playback commands a session accepts. Keeping
// the set closed lets the session dispatch with an exhaustive type switch
// instead of matching on strings.
type Command interface {
	isCommand()
}

// PlayCommand starts playback, originating on one side of the bridge
type PlayCommand struct {
	Origin Origin
}

// PauseCommand stops playback, originating on one side of the bridge
type PauseCommand struct {
	Origin Origin
}

// SeekCommand moves the originating clock to an absolute position
type SeekCommand struct {
	Origin  Origin
	Seconds float64
}

func (PlayCommand) isCommand()  {}
func (PauseCommand) isCommand() {}
func (SeekCommand) isCommand()  {}
