package pipeline

import (
	"time"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/parser"
	"github.com/footprint-tools/unilang/internal/usage"
)

// Redacted replaces the value of sensitive arguments in recorded input.
const Redacted = "***"

func (p *Pipeline) record(in parser.Instruction, name string, started time.Time, elapsed time.Duration, err error) {
	if p.history == nil {
		return
	}

	entry := domain.HistoryEntry{
		SessionID: p.sessionID,
		Command:   name,
		Input:     p.redact(in).String(),
		Status:    statusOf(err),
		ErrorCode: usage.CodeOf(err),
		Duration:  elapsed,
		Timestamp: started,
	}
	if recErr := p.history.Record(entry); recErr != nil {
		p.logger.Warn("pipeline: could not record history: %v", recErr)
	}
}

func statusOf(err error) domain.ExecStatus {
	switch {
	case err == nil:
		return domain.StatusOK
	case usage.IsHelp(err):
		return domain.StatusHelp
	default:
		return domain.StatusFailed
	}
}

// redact returns a copy of in with the values of sensitive arguments
// masked. Positionals are attributed to arguments the same way binding
// does: in declaration order, skipping arguments that were given by name.
func (p *Pipeline) redact(in parser.Instruction) parser.Instruction {
	def, ok := p.registry.Command(command.JoinPath(in.Path))
	if !ok {
		return in
	}

	out := in
	out.Named = make(map[string][]string, len(in.Named))
	for key, values := range in.Named {
		arg, known := def.Argument(key)
		if known && arg.Attributes.Sensitive {
			values = mask(values)
		}
		out.Named[key] = values
	}

	out.Positional = append([]string(nil), in.Positional...)
	pos := 0
	for _, arg := range def.Arguments {
		if pos >= len(out.Positional) {
			break
		}
		if namedFor(arg, in) {
			continue
		}
		n := 1
		if arg.Attributes.Multiple {
			n = len(out.Positional) - pos
		}
		if arg.Attributes.Sensitive {
			copy(out.Positional[pos:pos+n], mask(out.Positional[pos:pos+n]))
		}
		pos += n
	}
	return out
}

func namedFor(arg command.ArgumentDefinition, in parser.Instruction) bool {
	for key := range in.Named {
		if arg.Matches(key) {
			return true
		}
	}
	return false
}

func mask(values []string) []string {
	out := make([]string, len(values))
	for i := range out {
		out[i] = Redacted
	}
	return out
}
