package domain

import "time"

// ExecStatus is the outcome of one executed instruction.
type ExecStatus int

const (
	StatusOK ExecStatus = iota
	StatusFailed
	StatusHelp
)

var execStatusNames = map[ExecStatus]string{
	StatusOK:     "ok",
	StatusFailed: "failed",
	StatusHelp:   "help",
}

// String returns the string representation of the ExecStatus.
func (s ExecStatus) String() string {
	if name, ok := execStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseExecStatus converts a string to an ExecStatus.
func ParseExecStatus(s string) (ExecStatus, bool) {
	for status, name := range execStatusNames {
		if name == s {
			return status, true
		}
	}
	return StatusOK, false
}

// HistoryEntry records one instruction that went through the pipeline.
// Input is the instruction as typed with sensitive argument values redacted.
type HistoryEntry struct {
	ID        int64
	SessionID string
	Command   string
	Input     string
	Status    ExecStatus
	ErrorCode string
	Duration  time.Duration
	Timestamp time.Time
}

// HistoryFilter defines criteria for filtering history entries.
type HistoryFilter struct {
	SessionID string
	Command   string
	Status    *ExecStatus
	Since     *time.Time
	Limit     int
}
