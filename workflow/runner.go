package workflow

import (
	"context"
	"errors"
	"time"

	"echochamber/classify"
	"echochamber/generate"
	"echochamber/types"
)

// ErrUnknownInput rejects a submission before any state transition or
// network traffic happens.
var ErrUnknownInput = errors.New("invalid input: provide a YouTube URL, blog post URL, or an audio/video file")

// Runner executes the submit pipeline for one account:
// classify → build request → call model → store result.
type Runner struct {
	state   *Manager
	builder *generate.Builder
}

// NewRunner creates a runner over the given state manager and builder.
func NewRunner(state *Manager, builder *generate.Builder) *Runner {
	return &Runner{state: state, builder: builder}
}

// State exposes the underlying manager for status polling.
func (r *Runner) State() *Manager { return r.state }

// submitTimeout bounds a background generation call. Model calls on
// long media can take minutes; anything past this is a lost cause.
const submitTimeout = 10 * time.Minute

// Submit runs one content-analysis request to completion. Unknown input
// is rejected synchronously without entering the loading phase. ErrBusy
// is returned while a previous call is outstanding. Any generation
// failure lands the machine in the error phase with no partial result.
func (r *Runner) Submit(ctx context.Context, text string, file *generate.Upload) (*types.GeneratedAssets, error) {
	inputType, source, err := r.begin(text, file)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, inputType, source, file)
}

// SubmitAsync performs the synchronous checks and the transition to
// loading, then runs the generation in the background. The caller polls
// the state manager for the outcome.
func (r *Runner) SubmitAsync(ctx context.Context, text string, file *generate.Upload) error {
	inputType, source, err := r.begin(text, file)
	if err != nil {
		return err
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, submitTimeout)
		defer cancel()
		_, _ = r.run(ctx, inputType, source, file)
	}()
	return nil
}

// begin classifies the input and claims the state machine. Unknown
// input never transitions; a loading machine returns ErrBusy.
func (r *Runner) begin(text string, file *generate.Upload) (types.InputType, string, error) {
	mime := ""
	source := text
	if file != nil {
		mime = file.MIME
		source = file.Name
	}

	inputType := classify.Classify(text, mime)
	if inputType == types.InputUnknown {
		return inputType, source, ErrUnknownInput
	}

	if err := r.state.BeginSubmit(source); err != nil {
		return inputType, source, err
	}
	return inputType, source, nil
}

func (r *Runner) run(ctx context.Context, inputType types.InputType, source string, file *generate.Upload) (*types.GeneratedAssets, error) {
	assets, err := r.builder.BuildAndSend(ctx, inputType, source, file)
	if err != nil {
		r.state.SetError(err)
		return nil, err
	}
	r.state.SetResult(assets)
	return assets, nil
}
