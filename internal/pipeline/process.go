package pipeline

import (
	"errors"
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/parser"
	"github.com/footprint-tools/unilang/internal/usage"
)

// ProcessCommand parses input, which may hold several instructions joined
// by the instruction delimiter, and runs them. Every instruction is
// verified before any routine runs. Once verified, all of them execute in
// order even if one fails; Err holds the first failure.
func (p *Pipeline) ProcessCommand(input string) Result {
	start := p.now()

	instructions, err := p.parser.ParseMultiple(input)
	if err != nil {
		p.logger.Debug("pipeline: parse failed: %v", err)
		return Result{Input: input, Err: err, Duration: p.now().Sub(start)}
	}
	if len(instructions) == 0 {
		instructions = []parser.Instruction{{}}
	}

	res := p.run(instructions)
	res.Input = input
	res.Duration = p.now().Sub(start)
	return res
}

// ProcessArgv runs one instruction taken from OS-provided arguments.
func (p *Pipeline) ProcessArgv(argv []string) Result {
	start := p.now()
	input := strings.Join(argv, " ")

	in, err := p.parser.ParseFromArgv(argv)
	if err != nil {
		p.logger.Debug("pipeline: argv parse failed: %v", err)
		return Result{Input: input, Err: err, Duration: p.now().Sub(start)}
	}

	res := p.run([]parser.Instruction{in})
	res.Input = input
	res.Duration = p.now().Sub(start)
	return res
}

// ProcessBatch runs every input independently, in order.
func (p *Pipeline) ProcessBatch(inputs []string) BatchResult {
	batch := BatchResult{Total: len(inputs)}
	for _, input := range inputs {
		batch.add(p.ProcessCommand(input))
	}
	p.logger.Info("pipeline: batch of %d finished, %d failed", batch.Total, batch.Failed)
	return batch
}

// ProcessSequence runs inputs in order and stops after the first failure.
// Total still counts every input.
func (p *Pipeline) ProcessSequence(inputs []string) BatchResult {
	batch := BatchResult{Total: len(inputs)}
	for _, input := range inputs {
		res := p.ProcessCommand(input)
		batch.add(res)
		if !res.Success() {
			p.logger.Info("pipeline: sequence stopped at %q: %s", res.Input, res.ErrorCode())
			break
		}
	}
	return batch
}

// ValidateCommand parses and verifies input without running anything.
func (p *Pipeline) ValidateCommand(input string) error {
	instructions, err := p.parser.ParseMultiple(input)
	if err != nil {
		return err
	}
	if len(instructions) == 0 {
		instructions = []parser.Instruction{{}}
	}
	_, err = p.analyzer.Analyze(instructions)
	return err
}

// ValidateBatch validates each input; the result holds nil for valid ones.
func (p *Pipeline) ValidateBatch(inputs []string) []error {
	errs := make([]error, len(inputs))
	for i, input := range inputs {
		errs[i] = p.ValidateCommand(input)
	}
	return errs
}

func (p *Pipeline) run(instructions []parser.Instruction) Result {
	var (
		res  Result
		cmds = make([]*command.VerifiedCommand, 0, len(instructions))
	)

	for _, in := range instructions {
		cmd, err := p.analyzer.AnalyzeOne(in)
		if err != nil {
			res.Err = err
			p.logAnalysis(in, err)
			p.record(in, commandName(in), p.now(), 0, err)
			return res
		}
		cmds = append(cmds, cmd)
		res.Commands = append(res.Commands, cmd.Name())
	}

	ctx := p.context()
	for i, cmd := range cmds {
		started := p.now()
		p.logger.Info("pipeline: run %s args=[%s]", cmd.Name(), strings.Join(argumentNames(cmd), ","))

		out, err := p.interpreter.Execute(cmd, ctx)
		elapsed := p.now().Sub(started)
		p.record(instructions[i], cmd.Name(), started, elapsed, err)

		if err != nil {
			p.logger.Warn("pipeline: %s failed: %s", cmd.Name(), usage.CodeOf(err))
			if res.Err == nil {
				res.Err = err
			}
			continue
		}
		res.Outputs = append(res.Outputs, out)
	}
	return res
}

func (p *Pipeline) logAnalysis(in parser.Instruction, err error) {
	if usage.IsHelp(err) {
		p.logger.Debug("pipeline: help requested for %q", commandName(in))
		return
	}
	p.logger.Debug("pipeline: %q rejected: %s", commandName(in), usage.CodeOf(err))
}

func commandName(in parser.Instruction) string {
	return command.JoinPath(in.Path)
}

// argumentNames lists bound argument names in declaration order. Values
// are left out so sensitive input never reaches the log.
func argumentNames(cmd *command.VerifiedCommand) []string {
	var names []string
	for _, a := range cmd.Definition.Arguments {
		if cmd.Has(a.Name) {
			names = append(names, a.Name)
		}
	}
	return names
}

// ErrHistoryDisabled is returned by history operations on a pipeline
// without a store.
var ErrHistoryDisabled = errors.New("history is disabled")

// History returns the store the pipeline records into.
func (p *Pipeline) History() (domain.HistoryStore, error) {
	if p.history == nil {
		return nil, ErrHistoryDisabled
	}
	return p.history, nil
}
