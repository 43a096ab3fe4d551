// Package cli is the unilang command line: one instruction per run, plus
// the repl, commands, history and completion subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/footprint-tools/unilang/internal/app"
	"github.com/footprint-tools/unilang/internal/builtins"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/format"
	"github.com/footprint-tools/unilang/internal/help"
	"github.com/footprint-tools/unilang/internal/repl"
	"github.com/footprint-tools/unilang/internal/ui"
	"github.com/footprint-tools/unilang/internal/ui/prompt"
	"github.com/footprint-tools/unilang/internal/usage"
)

var errHistoryDisabled = errors.New("history is disabled (history_enabled=false or --no-history)")

// Env holds the streams and configuration a run works against.
type Env struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Config defaults to the rc file provider.
	Config domain.ConfigProvider
}

// StdEnv returns the process streams.
func StdEnv() Env {
	return Env{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

type runner struct {
	env   Env
	flags Flags
	code  int
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, env Env) int {
	r := &runner{env: env}
	root := buildTree(r)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(env.ErrOut, err.Error())
		return exitCode(err)
	}
	return r.code
}

// buildTree assembles the cobra command tree around r.
func buildTree(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "unilang [flags] <.command.path> [name::value ...] [positional ...]",
		Short: "Run unilang commands",
		Long: "Run one unilang instruction, for example:\n\n" +
			"  unilang .math.add 20 22\n" +
			"  unilang .system.hello name::Ada\n" +
			"  unilang .files.list ?",
		Version:       app.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          r.runInstruction,
	}
	root.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return r.commandNames(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(r.env.In)
	root.SetOut(r.env.Out)
	root.SetErr(r.env.ErrOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage.Parse(-1, "%v", err)
	})

	r.flags.bind(root.PersistentFlags())
	// Everything after the command path belongs to the instruction.
	root.Flags().SetInterspersed(false)

	root.AddCommand(
		newReplCmd(r),
		newCommandsCmd(r),
		newHistoryCmd(r),
		newCompletionCmd(root),
	)
	return root
}

func (r *runner) runInstruction(cmd *cobra.Command, args []string) error {
	s, err := open(r.env, &r.flags)
	if err != nil {
		return err
	}
	defer s.close()

	res := s.pipeline.ProcessArgv(args)
	ui.Report(s.app.Output, r.env.ErrOut, s.app.Styler, res, r.flags.truncation())
	r.code = exitCode(res.Err)
	return nil
}

func (r *runner) commandNames(toComplete string) []string {
	flags := r.flags
	flags.NoHistory = true
	s, err := open(r.env, &flags)
	if err != nil {
		return nil
	}
	defer s.close()

	var names []string
	for _, name := range s.registry.Names() {
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		if def, ok := s.registry.Command(name); ok && def.Hidden {
			continue
		}
		names = append(names, name)
	}
	return names
}

func newReplCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read and run instructions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(r.env, &r.flags)
			if err != nil {
				return err
			}
			defer s.close()

			opts := []repl.Option{
				repl.WithStyler(s.app.Styler),
				repl.WithLogger(s.app.Logger),
				repl.WithTruncation(r.flags.truncation()),
			}
			// Piped input keeps the REPL's own line prompter so both read
			// from one buffer.
			if p, ok := prompt.For(r.env.In, r.env.ErrOut, s.app.Styler).(*prompt.Terminal); ok {
				opts = append(opts, repl.WithPrompter(p))
			}

			err = repl.New(s.pipeline, s.registry, r.env.In, s.app.Output, r.env.ErrOut, opts...).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newCommandsCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "commands [prefix]",
		Short: "List registered commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(r.env, &r.flags)
			if err != nil {
				return err
			}
			defer s.close()

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			gen := help.NewGenerator(s.registry, help.WithStyler(s.app.Styler))
			s.app.Output.Pager(gen.List(prefix))
			return nil
		},
	}
}

func newHistoryCmd(r *runner) *cobra.Command {
	var (
		limit     int
		sessionID string
		clearAll  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear executed instructions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(r.env, &r.flags)
			if err != nil {
				return err
			}
			defer s.close()

			store := s.app.History
			if store == nil {
				return errHistoryDisabled
			}

			if clearAll {
				n, err := store.Clear(sessionID)
				if err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				_, _ = s.app.Output.Printf("cleared %d entries\n", n)
				return nil
			}

			entries, err := store.List(domain.HistoryFilter{SessionID: sessionID, Limit: limit})
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			s.app.Output.Pager(builtins.RenderHistory(entries, format.LayoutFrom(s.app.Config), time.Now()) + "\n")
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().StringVar(&sessionID, "session", "", "Only entries from this session")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete entries instead of listing them")
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completions",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// exitCode maps a run error to the process exit status: usage errors
// carry their own, anything else is 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if ue, ok := usage.As(err); ok {
		return ue.GetExitCode()
	}
	return 1
}
