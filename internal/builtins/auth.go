package builtins

import (
	"crypto/subtle"

	"github.com/footprint-tools/unilang/internal/command"
)

func (r *routines) login(cmd *command.VerifiedCommand, ctx *command.Context) (command.OutputData, error) {
	user := cmd.String("user", "")
	token := cmd.String("token", "")

	want, ok := r.deps.Credentials[user]
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(token)) != 1 {
		ctx.Logger.Warn("auth: rejected login for %s", user)
		return command.OutputData{}, command.NewError(CodeAuthFailed, "invalid credentials for %s", user)
	}
	ctx.Logger.Info("auth: %s logged in", user)
	return command.Text("logged in as " + user), nil
}
