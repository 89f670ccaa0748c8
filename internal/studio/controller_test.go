package studio_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"

	"asset-studio/internal/backend"
	"asset-studio/internal/page"
	"asset-studio/internal/studio"
)

type fakeBackend struct {
	srv     *httptest.Server
	hits    atomic.Int32
	mu      sync.Mutex
	prompts []string
}

func newFakeBackend(t *testing.T, status int, body string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.hits.Add(1)
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.Unmarshal(raw, &req)
		fb.mu.Lock()
		fb.prompts = append(fb.prompts, req.Prompt)
		fb.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func newController(t *testing.T, endpoint string, opts ...studio.Option) (*studio.Controller, *page.Page) {
	t.Helper()
	client, err := backend.NewClient(endpoint, backend.Options{HTTPClient: &fhttp.Client{}})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	p := page.New()
	c, err := studio.NewController(client, p.Handles(), opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, p
}

func assertSettled(t *testing.T, p *page.Page) {
	t.Helper()
	snap := p.Snapshot()
	if snap.LoadingVisible {
		t.Error("loading indicator left visible")
	}
	if !snap.TriggerEnabled {
		t.Error("trigger control left disabled")
	}
}

func TestSubmit_SendsTrimmedPrompt(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"image":"QUNB"}`)
	c, p := newController(t, fb.srv.URL+"/generate-image")

	for _, in := range []string{"  a red fox  ", "\ta lighthouse\n", "plain"} {
		c.Submit(context.Background(), in)
		assertSettled(t, p)
	}

	want := []string{"a red fox", "a lighthouse", "plain"}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.prompts) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(fb.prompts))
	}
	for i := range want {
		if fb.prompts[i] != want[i] {
			t.Errorf("request %d: expected prompt %q, got %q", i, want[i], fb.prompts[i])
		}
	}
}

func TestSubmit_EmptyPromptNeverCallsNetwork(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"image":"QUNB"}`)
	c, p := newController(t, fb.srv.URL)

	for _, in := range []string{"", "   ", "\t\n"} {
		out := c.Submit(context.Background(), in)

		if out.State != studio.Error || out.Message != studio.EmptyPromptMessage {
			t.Errorf("input %q: unexpected outcome %+v", in, out)
		}
		var ve *studio.ValidationError
		if !errors.As(out.Err, &ve) {
			t.Errorf("input %q: expected ValidationError, got %T", in, out.Err)
		}
		snap := p.Snapshot()
		if !snap.ErrorVisible || snap.ErrorMessage != "Please enter a prompt." {
			t.Errorf("input %q: unexpected page %+v", in, snap)
		}
		assertSettled(t, p)
	}

	if fb.hits.Load() != 0 {
		t.Errorf("expected no network calls, got %d", fb.hits.Load())
	}
}

func TestSubmit_SuccessShowsImage(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"image":"QUNB"}`)
	c, p := newController(t, fb.srv.URL)

	out := c.Submit(context.Background(), "fox")
	if out.State != studio.Success || out.Err != nil {
		t.Fatalf("unexpected outcome %+v", out)
	}

	snap := p.Snapshot()
	if snap.ImageSource != "data:image/png;base64,QUNB" {
		t.Errorf("unexpected image source %q", snap.ImageSource)
	}
	if !snap.ResultVisible || snap.ErrorVisible {
		t.Errorf("expected result visible and error hidden: %+v", snap)
	}
	assertSettled(t, p)
}

func TestSubmit_ServerFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"success without image", http.StatusOK, `{}`, "API response was successful but no image data was found."},
		{"failure with error", http.StatusTooManyRequests, `{"error":"rate limited"}`, "rate limited"},
		{"failure without error", http.StatusInternalServerError, `{}`, "An unknown error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, tt.status, tt.body)
			c, p := newController(t, fb.srv.URL)

			out := c.Submit(context.Background(), "fox")
			if out.State != studio.Error || out.Message != tt.wantMsg {
				t.Errorf("unexpected outcome %+v", out)
			}
			var se *backend.ServerError
			if !errors.As(out.Err, &se) {
				t.Errorf("expected ServerError, got %T", out.Err)
			}

			snap := p.Snapshot()
			if !snap.ErrorVisible || snap.ResultVisible || snap.ErrorMessage != tt.wantMsg {
				t.Errorf("unexpected page %+v", snap)
			}
			assertSettled(t, p)
		})
	}
}

func TestSubmit_TransportFailures(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		endpoint := srv.URL
		srv.Close()

		c, p := newController(t, endpoint)
		out := c.Submit(context.Background(), "fox")

		if !strings.HasPrefix(out.Message, "An error occurred: ") || len(out.Message) == len("An error occurred: ") {
			t.Errorf("unexpected message %q", out.Message)
		}
		var te *backend.TransportError
		if !errors.As(out.Err, &te) {
			t.Errorf("expected TransportError, got %T", out.Err)
		}
		if out.Message != studio.TransportPrefix+te.Error() {
			t.Errorf("message %q does not carry the underlying failure %q", out.Message, te.Error())
		}
		if snap := p.Snapshot(); !snap.ErrorVisible || snap.ErrorMessage != out.Message {
			t.Errorf("unexpected page %+v", snap)
		}
		assertSettled(t, p)
	})

	t.Run("malformed json", func(t *testing.T) {
		fb := newFakeBackend(t, http.StatusBadGateway, `<html>Bad Gateway</html>`)
		c, p := newController(t, fb.srv.URL)

		out := c.Submit(context.Background(), "fox")
		if out.State != studio.Error || !strings.HasPrefix(out.Message, studio.TransportPrefix) {
			t.Errorf("unexpected outcome %+v", out)
		}
		assertSettled(t, p)
	})
}

func TestSubmit_ResetsPreviousResult(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"image":"QUNB"}`)
	c, p := newController(t, fb.srv.URL)

	c.Submit(context.Background(), "fox")
	if !p.Snapshot().ResultVisible {
		t.Fatal("expected result after first attempt")
	}

	c.Submit(context.Background(), " ")
	snap := p.Snapshot()
	if snap.ResultVisible || !snap.ErrorVisible {
		t.Errorf("expected previous result hidden and error shown: %+v", snap)
	}

	c.Submit(context.Background(), "fox")
	snap = p.Snapshot()
	if !snap.ResultVisible || snap.ErrorVisible {
		t.Errorf("expected previous error hidden and result shown: %+v", snap)
	}
}

func TestSubmitInput_ReadsInput(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"image":"QUNB"}`)
	c, p := newController(t, fb.srv.URL)

	p.SetPrompt("  from the input  ")
	out := c.SubmitInput(context.Background())
	if out.State != studio.Success {
		t.Fatalf("unexpected outcome %+v", out)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.prompts) != 1 || fb.prompts[0] != "from the input" {
		t.Errorf("unexpected prompts %v", fb.prompts)
	}
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	close(g.started)
	<-g.release
	return "QUNB", nil
}

func TestSubmit_RejectsOverlappingAttempt(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	p := page.New()
	c, err := studio.NewController(gen, p.Handles())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	done := make(chan studio.Outcome, 1)
	go func() { done <- c.Submit(context.Background(), "first") }()

	select {
	case <-gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first attempt never reached the generator")
	}

	if !c.Busy() {
		t.Error("expected controller to be busy")
	}
	before := p.Snapshot()

	second := c.Submit(context.Background(), "second")
	if !errors.Is(second.Err, studio.ErrSubmissionInFlight) {
		t.Errorf("expected ErrSubmissionInFlight, got %v", second.Err)
	}
	if after := p.Snapshot(); after != before {
		t.Errorf("rejected submit changed the page: before %+v after %+v", before, after)
	}

	close(gen.release)
	first := <-done
	if first.State != studio.Success {
		t.Errorf("unexpected first outcome %+v", first)
	}
	if c.Busy() {
		t.Error("expected controller idle after attempt")
	}
	assertSettled(t, p)
}

type recorderFunc func(ctx context.Context, a studio.Attempt)

func (f recorderFunc) Record(ctx context.Context, a studio.Attempt) { f(ctx, a) }

func TestSubmit_NotifiesRecorder(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"image":"QUNB"}`)

	var attempts []studio.Attempt
	c, _ := newController(t, fb.srv.URL, studio.WithRecorder(recorderFunc(func(ctx context.Context, a studio.Attempt) {
		attempts = append(attempts, a)
	})))

	c.Submit(context.Background(), " fox ")
	c.Submit(context.Background(), "")

	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].Prompt != "fox" || attempts[0].Image != "QUNB" || attempts[0].Outcome.State != studio.Success {
		t.Errorf("unexpected first attempt %+v", attempts[0])
	}
	if attempts[1].Image != "" || attempts[1].Outcome.State != studio.Error {
		t.Errorf("unexpected second attempt %+v", attempts[1])
	}
}

func TestNewController_RequiresHandles(t *testing.T) {
	gen := &blockingGenerator{}
	if _, err := studio.NewController(nil, page.New().Handles()); err == nil {
		t.Error("expected error for nil generator")
	}
	h := page.New().Handles()
	h.Error = nil
	if _, err := studio.NewController(gen, h); err == nil {
		t.Error("expected error for missing error region")
	}
}

func TestDataURI(t *testing.T) {
	if got := studio.DataURI("QUNB"); got != "data:image/png;base64,QUNB" {
		t.Errorf("unexpected data URI %q", got)
	}
}
