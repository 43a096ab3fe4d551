package builtins

import (
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
)

func hello(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	return command.Text("Hello, " + cmd.String("name", "World") + "!"), nil
}

func echo(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	words := cmd.List("words")
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.String())
	}
	return command.Text(strings.Join(parts, " ")), nil
}

func (r *routines) version(_ *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	v := r.deps.Version
	if v == "" {
		v = "dev"
	}
	return command.Text("unilang " + v), nil
}
