// Package optimizer turns a raw short-form script into a shot breakdown, titles,
// description and editing guide with a single schema-constrained model call.
package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jonathan/shorts-optimizer/internal/llm"
	"github.com/jonathan/shorts-optimizer/internal/prompts"
	"github.com/jonathan/shorts-optimizer/internal/schemas"
	"github.com/jonathan/shorts-optimizer/internal/types"
)

// Optimizer issues one optimization request per call. It keeps no state between calls.
type Optimizer struct {
	client  llm.Client
	tier    llm.ModelTier
	timeout time.Duration
	verbose bool
}

// Option configures an Optimizer
type Option func(*Optimizer)

// WithTier selects the model tier used for requests
func WithTier(tier llm.ModelTier) Option {
	return func(o *Optimizer) { o.tier = tier }
}

// WithTimeout bounds each request. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Optimizer) { o.timeout = d }
}

// WithVerbose logs prompt and payload sizes for each call
func WithVerbose(verbose bool) Option {
	return func(o *Optimizer) { o.verbose = verbose }
}

// New creates an Optimizer backed by client
func New(client llm.Client, opts ...Option) *Optimizer {
	o := &Optimizer{
		client: client,
		tier:   llm.TierStandard,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BuildPrompt embeds the script verbatim in the optimization instructions.
func BuildPrompt(script string) string {
	template := prompts.MustGet("optimization.json", "optimize-short")
	return prompts.Format(template, map[string]string{
		"Script": script,
	})
}

// CheckScript rejects input that is blank after trimming
func CheckScript(script string) error {
	if strings.TrimSpace(script) == "" {
		return &ValidationError{Field: "script", Message: "Script is empty"}
	}
	return nil
}

// Optimize sends script to the generative service and parses the structured result.
// The caller is responsible for rejecting blank input.
func (o *Optimizer) Optimize(ctx context.Context, script string) (*types.OptimizationResult, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(script)
	model := o.client.GetModel(o.tier)
	start := time.Now()
	if o.verbose {
		log.Printf("[optimizer] requesting model=%s prompt_chars=%d", model, len(prompt))
	}

	payload, err := o.client.GenerateStructured(ctx, prompt, ResponseSchema(), o.tier)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			err = &EmptyResponseError{Cause: err}
		} else {
			err = &TransportError{Cause: err}
		}
		log.Printf("[optimizer] model=%s failed after %v kind=%s status=%d: %v",
			model, time.Since(start), KindOf(err), StatusCode(err), err)
		return nil, err
	}

	result, err := ParseResult(payload)
	if err != nil {
		log.Printf("[optimizer] model=%s failed after %v kind=%s: %v", model, time.Since(start), KindOf(err), err)
		return nil, err
	}

	if o.verbose {
		log.Printf("[optimizer] model=%s payload_chars=%d", model, len(payload))
	}
	log.Printf("[optimizer] model=%s produced %d shots in %v", model, len(result.RefinedScript), time.Since(start))
	return result, nil
}

// ParseResult validates payload against the result schema and decodes it.
// A blank payload is an EmptyResponseError; anything that does not match the
// schema is a MalformedResponseError. No field is defaulted.
func ParseResult(payload string) (*types.OptimizationResult, error) {
	text := llm.CleanJSONBlock(payload)
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyResponseError{}
	}

	if err := schemas.ValidateOptimizationResult(text); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &MalformedResponseError{
				Message: "payload does not match result schema",
				Fields:  validationErr.Errors,
				Cause:   err,
			}
		}
		return nil, &MalformedResponseError{Message: "payload is not valid JSON", Cause: err}
	}

	var result types.OptimizationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &MalformedResponseError{Message: "failed to decode payload", Cause: err}
	}

	if err := result.Validate(); err != nil {
		return nil, &MalformedResponseError{Message: "payload failed result validation", Cause: err}
	}

	return &result, nil
}
