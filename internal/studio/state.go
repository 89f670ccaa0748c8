package studio

import "fmt"

// UIState is derived from which regions are visible. Exactly one holds at a
// time.
type UIState int

const (
	Idle UIState = iota
	Loading
	Success
	Error
)

func (s UIState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

func (s UIState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *UIState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "loading":
		*s = Loading
	case "success":
		*s = Success
	case "error":
		*s = Error
	default:
		return fmt.Errorf("unknown UI state %q", text)
	}
	return nil
}
