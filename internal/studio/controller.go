package studio

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

const dataURIPrefix = "data:image/png;base64,"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Attempt describes one finished submission. Image is the raw base64 payload
// and is empty unless the attempt succeeded.
type Attempt struct {
	Prompt    string
	Image     string
	Outcome   Outcome
	StartedAt time.Time
	Duration  time.Duration
}

type Recorder interface {
	Record(ctx context.Context, attempt Attempt)
}

// Outcome is what a submission left on screen.
type Outcome struct {
	State    UIState
	ImageURI string
	Message  string
	Err      error
}

type Option func(*Controller)

func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

type Controller struct {
	generator Generator
	ui        Handles
	recorder  Recorder
	inFlight  atomic.Bool
}

func NewController(generator Generator, ui Handles, opts ...Option) (*Controller, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if err := ui.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		generator: generator,
		ui:        ui,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func DataURI(image string) string {
	return dataURIPrefix + image
}

// Busy reports whether an attempt is in flight.
func (c *Controller) Busy() bool {
	return c.inFlight.Load()
}

// SubmitInput submits whatever the prompt input currently holds. Both the
// button and the Enter key are bound to it.
func (c *Controller) SubmitInput(ctx context.Context) Outcome {
	return c.Submit(ctx, c.ui.Input.Value())
}

// Submit runs one attempt. It never returns an error of its own: every failure
// ends up in the error region and in Outcome.Err. A call made while another
// attempt is in flight is rejected with ErrSubmissionInFlight and leaves the
// UI alone.
func (c *Controller) Submit(ctx context.Context, promptText string) Outcome {
	if !c.inFlight.CompareAndSwap(false, true) {
		log.Printf("[Studio] Ignoring submit: %v", ErrSubmissionInFlight)
		return Outcome{State: Loading, Err: ErrSubmissionInFlight}
	}
	defer c.inFlight.Store(false)

	started := time.Now()
	prompt := strings.TrimSpace(promptText)
	image, outcome := c.run(ctx, prompt)

	if c.recorder != nil {
		c.recorder.Record(ctx, Attempt{
			Prompt:    prompt,
			Image:     image,
			Outcome:   outcome,
			StartedAt: started,
			Duration:  time.Since(started),
		})
	}
	return outcome
}

func (c *Controller) run(ctx context.Context, prompt string) (string, Outcome) {
	c.ui.Result.Hide()
	c.ui.Error.Hide()
	c.ui.Loading.Show()
	c.ui.Trigger.SetEnabled(false)

	defer func() {
		c.ui.Loading.Hide()
		c.ui.Trigger.SetEnabled(true)
	}()

	if prompt == "" {
		return "", c.fail(&ValidationError{Message: EmptyPromptMessage})
	}

	log.Printf("[Studio] Submitting prompt: %.50s", prompt)

	image, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[Studio] Error generating image: %v", err)
		return "", c.fail(err)
	}

	uri := DataURI(image)
	c.ui.Result.SetSource(uri)
	c.ui.Result.Show()

	return image, Outcome{State: Success, ImageURI: uri}
}

func (c *Controller) fail(err error) Outcome {
	msg := userMessage(err)
	c.ui.Error.SetMessage(msg)
	c.ui.Error.Show()
	return Outcome{State: Error, Message: msg, Err: err}
}
