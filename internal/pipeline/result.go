package pipeline

import (
	"strings"
	"time"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/usage"
)

// Result is the outcome of one processed input. An input may hold several
// instructions; Outputs has one entry per instruction that succeeded.
type Result struct {
	Input    string
	Commands []string
	Outputs  []command.OutputData
	Err      error
	Duration time.Duration
}

// Success reports whether every instruction in the input succeeded.
func (r Result) Success() bool {
	return r.Err == nil
}

// ErrorCode returns the stable code of the failure, or "".
func (r Result) ErrorCode() string {
	if r.Err == nil {
		return ""
	}
	return usage.CodeOf(r.Err)
}

// HelpText returns the rendered help when the input requested help.
func (r Result) HelpText() (string, bool) {
	if !usage.IsHelp(r.Err) {
		return "", false
	}
	return r.Err.Error(), true
}

// Content joins the output of every successful instruction.
func (r Result) Content() string {
	parts := make([]string, 0, len(r.Outputs))
	for _, out := range r.Outputs {
		if out.Content != "" {
			parts = append(parts, out.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// BatchResult aggregates the results of several inputs.
type BatchResult struct {
	Results   []Result
	Total     int
	Succeeded int
	Failed    int
}

func (b *BatchResult) add(r Result) {
	b.Results = append(b.Results, r)
	if r.Success() {
		b.Succeeded++
	} else {
		b.Failed++
	}
}

// SuccessRate returns the percentage of successful inputs among those
// attempted, or zero when none were.
func (b BatchResult) SuccessRate() float64 {
	attempted := b.Succeeded + b.Failed
	if attempted == 0 {
		return 0
	}
	return float64(b.Succeeded) / float64(attempted) * 100
}

// AnyFailed reports whether at least one input failed.
func (b BatchResult) AnyFailed() bool {
	return b.Failed > 0
}

// AllSucceeded reports whether every input ran and succeeded.
func (b BatchResult) AllSucceeded() bool {
	return b.Failed == 0 && b.Succeeded == b.Total
}
