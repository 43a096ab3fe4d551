package builtins

import (
	"strconv"

	"github.com/footprint-tools/unilang/internal/command"
)

func add(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	return command.Text(strconv.FormatInt(cmd.Int("a", 0)+cmd.Int("b", 0), 10)), nil
}

func divide(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	divisor := cmd.Float("divisor", 0)
	if divisor == 0 {
		return command.OutputData{}, command.NewError(CodeDivisionByZero, "cannot divide by zero")
	}
	return command.Text(formatFloat(cmd.Float("dividend", 0) / divisor)), nil
}

func sum(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
	var total float64
	for _, v := range cmd.List("values") {
		if f, ok := v.Number(); ok {
			total += f
		}
	}
	return command.Text(formatFloat(total)), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
