package game

import "encoding/json"

type RoomState int

const (
	StateWaiting RoomState = iota
	StatePlaying
	StateEnded
)

func (s RoomState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes RoomState as a string.
func (s RoomState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCleared
	OutcomeCaught
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeCaught:
		return "caught"
	case OutcomeAborted:
		return "aborted"
	default:
		return "none"
	}
}

// ParseOutcome maps a stored outcome name back to its value.
func ParseOutcome(s string) Outcome {
	switch s {
	case "cleared":
		return OutcomeCleared
	case "caught":
		return OutcomeCaught
	case "aborted":
		return OutcomeAborted
	default:
		return OutcomeNone
	}
}

// MarshalJSON serializes Outcome as a string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON deserializes Outcome from a string.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = ParseOutcome(s)
	return nil
}
