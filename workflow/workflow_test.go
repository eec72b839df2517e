package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"echochamber/generate"
	"echochamber/types"
)

// blockingGenerator holds every call until released.
type blockingGenerator struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	reply   []byte
	err     error
}

func (g *blockingGenerator) Generate(ctx context.Context, req generate.Request) ([]byte, error) {
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return g.reply, nil
}

func (g *blockingGenerator) ModelName() string { return "blocking" }

const minimalReply = `{
	"campaignStrategy": {"targetAudience": "devs", "brandVoice": "Direct", "contentPillars": ["a"], "postingSchedule": "daily"},
	"seoStrategy": {"primaryKeyword": "k", "secondaryKeywords": [], "suggestedTags": [], "metaDescription": "m"},
	"summary": "a summary",
	"keyTakeaways": ["one"],
	"videoClips": [],
	"audiograms": [],
	"socialPosts": [],
	"emailDraft": "Hi,"
}`

func newRunner(gen generate.Generator) *Runner {
	return NewRunner(NewManager(), generate.NewBuilder(gen))
}

func TestSubmitUnknownInputRejectedSynchronously(t *testing.T) {
	r := newRunner(&blockingGenerator{reply: []byte(minimalReply)})

	_, err := r.Submit(context.Background(), "not a url", nil)
	if !errors.Is(err, ErrUnknownInput) {
		t.Fatalf("Submit = %v, want ErrUnknownInput", err)
	}
	if got := r.State().GetStatus().Phase; got != PhaseIdle {
		t.Errorf("phase after rejected submit = %q, want idle (no loading transition)", got)
	}
}

func TestSubmitSuccessTransitions(t *testing.T) {
	r := newRunner(&blockingGenerator{reply: []byte(minimalReply)})

	assets, err := r.Submit(context.Background(), "https://youtu.be/abc", nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if assets.InputType != types.InputYouTube {
		t.Errorf("inputType = %q, want YouTube", assets.InputType)
	}
	if assets.Source != "https://youtu.be/abc" {
		t.Errorf("source = %q", assets.Source)
	}

	st := r.State().GetStatus()
	if st.Phase != PhaseResult || !st.HasResult {
		t.Errorf("status = %+v, want result phase with held assets", st)
	}
}

func TestSubmitFailureClearsPriorResult(t *testing.T) {
	gen := &blockingGenerator{reply: []byte(minimalReply)}
	r := newRunner(gen)

	if _, err := r.Submit(context.Background(), "https://youtu.be/abc", nil); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if r.State().Result() == nil {
		t.Fatal("first result not stored")
	}

	gen.mu.Lock()
	gen.err = errors.New("model overloaded")
	gen.mu.Unlock()

	_, err := r.Submit(context.Background(), "https://youtu.be/def", nil)
	if !errors.Is(err, generate.ErrGenerationFailed) {
		t.Fatalf("second Submit = %v, want ErrGenerationFailed", err)
	}

	st := r.State().GetStatus()
	if st.Phase != PhaseError {
		t.Errorf("phase = %q, want error", st.Phase)
	}
	if r.State().Result() != nil {
		t.Error("prior result survived a failed submit; submit must clear it first")
	}
}

func TestSubmitWhileLoadingRejected(t *testing.T) {
	gen := &blockingGenerator{
		reply:   []byte(minimalReply),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	r := newRunner(gen)

	done := make(chan error, 1)
	go func() {
		_, err := r.Submit(context.Background(), "https://youtu.be/abc", nil)
		done <- err
	}()

	<-gen.started
	if _, err := r.Submit(context.Background(), "https://youtu.be/def", nil); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Submit = %v, want ErrBusy", err)
	}

	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	r := newRunner(&blockingGenerator{reply: []byte(minimalReply)})

	if _, err := r.Submit(context.Background(), "https://youtu.be/abc", nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	r.State().Reset()

	st := r.State().GetStatus()
	if st.Phase != PhaseIdle || st.HasResult || st.Error != "" {
		t.Errorf("status after reset = %+v, want clean idle", st)
	}
}
