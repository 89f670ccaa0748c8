package studio

import "errors"

type Toggle interface {
	Show()
	Hide()
}

type TriggerControl interface {
	SetEnabled(enabled bool)
}

type PromptInput interface {
	Value() string
}

// ImageHolder is the result region: it holds the image source and can be
// revealed or hidden.
type ImageHolder interface {
	Toggle
	SetSource(src string)
}

// MessageHolder is the error region with its message slot.
type MessageHolder interface {
	Toggle
	SetMessage(msg string)
}

// Handles are the UI regions the controller drives. A surface hands them over
// once at construction time.
type Handles struct {
	Trigger TriggerControl
	Input   PromptInput
	Loading Toggle
	Result  ImageHolder
	Error   MessageHolder
}

func (h Handles) validate() error {
	switch {
	case h.Trigger == nil:
		return errors.New("trigger control handle is required")
	case h.Input == nil:
		return errors.New("prompt input handle is required")
	case h.Loading == nil:
		return errors.New("loading indicator handle is required")
	case h.Result == nil:
		return errors.New("result region handle is required")
	case h.Error == nil:
		return errors.New("error region handle is required")
	}
	return nil
}
