package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/pipeline"
)

// Report prints a pipeline result: help text or routine output to out,
// and a failure with its code to errOut. Routine output is cut to t;
// help text never is.
func Report(out domain.OutputWriter, errOut io.Writer, s domain.Styler, res pipeline.Result, t Truncation) {
	if text, ok := res.HelpText(); ok {
		out.Pager(withNewline(text))
		return
	}

	if content := res.Content(); content != "" {
		cut := t.Apply(content)
		_, _ = out.Printf("%s", withNewline(cut.Content))
		if cut.LinesOmitted > 0 {
			_, _ = fmt.Fprintln(errOut, s.Muted(fmt.Sprintf("... %d lines omitted", cut.LinesOmitted)))
		}
	}

	if res.Err != nil {
		_, _ = fmt.Fprintf(errOut, "%s %s\n", s.Error(res.Err.Error()), s.Muted("["+res.ErrorCode()+"]"))
	}
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
