package builtins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/dispatchers"
	"github.com/footprint-tools/unilang/internal/domain"
)

func unknownKey(key string) error {
	names := make([]string, 0, len(domain.ConfigKeys))
	for _, k := range domain.ConfigKeys {
		names = append(names, k.Name)
	}
	msg := fmt.Sprintf("unknown config key '%s'", key)
	if similar := dispatchers.FindSimilar(key, names, 1, 3); len(similar) > 0 {
		msg += fmt.Sprintf(" (did you mean '%s'?)", similar[0])
	}
	return command.NewError(CodeUnknownConfigKey, "%s", msg)
}

func (r *routines) configGet(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	key := cmd.String("key", "")
	if !domain.IsValidConfigKey(key) {
		return command.OutputData{}, unknownKey(key)
	}
	value, _ := r.deps.Config.Get(key)
	return command.Text(value), nil
}

func (r *routines) configSet(cmd *command.VerifiedCommand, ctx *command.Context) (command.OutputData, error) {
	key := cmd.String("key", "")
	value := cmd.String("value", "")
	if !domain.IsValidConfigKey(key) {
		return command.OutputData{}, unknownKey(key)
	}
	if err := r.deps.Config.Set(key, value); err != nil {
		return command.OutputData{}, command.NewError(CodeConfigWrite, "could not save %s: %v", key, err)
	}
	ctx.Logger.Info("config: %s updated", key)
	return command.Text(key + "=" + value), nil
}

func (r *routines) configList(_ *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	all, err := r.deps.Config.GetAll()
	if err != nil {
		return command.OutputData{}, command.NewError(CodeConfigWrite, "could not read config: %v", err)
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		if def, known := domain.GetConfigKey(k); known && def.HideIfEmpty && all[k] == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(k + "=" + all[k])
	}
	return command.Text(b.String()), nil
}
