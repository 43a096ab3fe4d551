package builtins

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
)

func listFiles(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	dir := cmd.String("path", ".")
	showAll := cmd.Bool("all", false)

	var match *regexp.Regexp
	if cmd.Has("pattern") {
		re, err := regexp.Compile(cmd.String("pattern", ""))
		if err != nil {
			return command.OutputData{}, command.NewError(CodeListFailed, "invalid pattern: %v", err)
		}
		match = re
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return command.OutputData{}, command.NewError(CodeListFailed, "cannot read %s: %v", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !showAll && strings.HasPrefix(name, ".") {
			continue
		}
		if match != nil && !match.MatchString(name) {
			continue
		}
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return command.Text(strings.Join(names, "\n")), nil
}
