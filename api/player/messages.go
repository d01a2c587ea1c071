package player

import (
	"fmt"

	"github.com/screenlab/screener-api/internal/player"
)

// clientMessage is the wire form of one command from the player client
type clientMessage struct {
	Type    string  `json:"type"`
	VideoID string  `json:"videoId,omitempty"`
	Origin  string  `json:"origin,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

func parseOrigin(origin string) (player.Origin, error) {
	switch origin {
	case "", "primary":
		return player.OriginPrimary, nil
	case "waveform":
		return player.OriginWaveform, nil
	default:
		return player.OriginPrimary, fmt.Errorf("unknown origin %q", origin)
	}
}

// parseCommand maps a transport message onto the session's closed command
// set. Select and generate are handled separately because they are not
// playback commands.
func parseCommand(msg clientMessage) (player.Command, error) {
	origin, err := parseOrigin(msg.Origin)
	if err != nil {
		return nil, err
	}

	switch msg.Type {
	case "play":
		return player.PlayCommand{Origin: origin}, nil
	case "pause":
		return player.PauseCommand{Origin: origin}, nil
	case "seek":
		return player.SeekCommand{Origin: origin, Seconds: msg.Seconds}, nil
	default:
		return nil, fmt.Errorf("unknown command type %q", msg.Type)
	}
}
