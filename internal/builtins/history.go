package builtins

import (
	"fmt"
	"strings"
	"time"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/format"
)

func (r *routines) store() (domain.HistoryStore, error) {
	if r.deps.History == nil {
		return nil, command.NewError(CodeHistoryDisabled, "history is disabled")
	}
	return r.deps.History, nil
}

func (r *routines) historyList(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	h, err := r.store()
	if err != nil {
		return command.OutputData{}, err
	}

	filter := domain.HistoryFilter{
		SessionID: cmd.String("session", ""),
		Limit:     int(cmd.Int("limit", 20)),
	}
	if cmd.Has("status") {
		if s, ok := domain.ParseExecStatus(cmd.String("status", "")); ok {
			filter.Status = &s
		}
	}

	entries, err := h.List(filter)
	if err != nil {
		return command.OutputData{}, command.NewError(CodeHistoryQuery, "could not read history: %v", err)
	}
	return command.Text(RenderHistory(entries, r.deps.Layout, r.deps.Now())), nil
}

func (r *routines) historyClear(cmd *command.VerifiedCommand, ctx *command.Context) (command.OutputData, error) {
	h, err := r.store()
	if err != nil {
		return command.OutputData{}, err
	}

	n, err := h.Clear(cmd.String("session", ""))
	if err != nil {
		return command.OutputData{}, command.NewError(CodeHistoryQuery, "could not clear history: %v", err)
	}
	ctx.Logger.Info("history: cleared %d entries", n)
	return command.Text(fmt.Sprintf("cleared %d entries", n)), nil
}

// RenderHistory lays entries out one per line in the order given: id,
// timestamp, relative age, duration, status and input.
func RenderHistory(entries []domain.HistoryEntry, layout format.Layout, now time.Time) string {
	if len(entries) == 0 {
		return "no history"
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%4d  %s  %-9s  %8s  %-6s  %s",
			e.ID,
			layout.DateTimeShort(e.Timestamp.Local()),
			format.Ago(e.Timestamp, now),
			format.Duration(e.Duration),
			e.Status,
			e.Input,
		)
		if e.ErrorCode != "" {
			b.WriteString("  [" + e.ErrorCode + "]")
		}
	}
	return b.String()
}
