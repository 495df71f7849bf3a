package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/observability"
	"github.com/matzehuels/textpics/pkg/pipeline"
)

// generateCommand creates the generate command, the full-featured variant:
// every granularity, recursive font discovery, auto underline style.
func (c *CLI) generateCommand() *cobra.Command {
	var opts genOpts

	cmd := &cobra.Command{
		Use:   "generate CORPUS [FONTS_DIR]",
		Short: "Render corpus tokens in every font",
		Long: `Render corpus tokens in every font found under FONTS_DIR (searched
recursively) and in every --font given.

Granularities are chosen with -c (characters), -w (words), -s (sentences),
-p (paragraphs) and -a (whole corpus); words are the default. Each token is
written as <kind>.<text>.<font>.<variant>.png in the output directory.`,
		Example: `  textpics generate corpus.txt fonts/ -ws --skew --blur
  textpics generate corpus.txt --font goregular --font gomono -a --underline
  textpics generate --config textpics.toml --progress`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := buildOptions(cmd, args, pipeline.ModeTokens, &opts)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), o, opts.progress)
		},
	}

	bindGenerateFlags(cmd, &opts)
	bindKindFlags(cmd, &opts)
	registerGenerateCompletions(cmd)
	return cmd
}

// wordsCommand creates the words command, the simple variant: words only
// and fonts from the top level of FONTS_DIR.
func (c *CLI) wordsCommand() *cobra.Command {
	var opts genOpts

	cmd := &cobra.Command{
		Use:   "words CORPUS [FONTS_DIR]",
		Short: "Render corpus words in every font",
		Long: `Render every unique word of the corpus in every .ttf font at the top
level of FONTS_DIR. Subdirectories are not searched.`,
		Example: `  textpics words corpus.txt fonts/ --rotate --skew`,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := buildOptions(cmd, args, pipeline.ModeWords, &opts)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), o, opts.progress)
		},
	}

	bindGenerateFlags(cmd, &opts)
	registerGenerateCompletions(cmd)
	return cmd
}

// =============================================================================
// Execution
// =============================================================================

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, showProgress bool) error {
	logger := loggerFromContext(ctx)
	logger.Debug("generation options", "mode", opts.Mode, "kinds", opts.EffectiveKinds(), "out", opts.OutputDir)
	printInfo("%s", pipeline.Describe(opts))

	var (
		res *pipeline.Result
		err error
	)
	if showProgress {
		res, err = runWithProgress(ctx, opts, pipeline.NewRunner(quietLogger(logger)))
	} else {
		res, err = pipeline.NewRunner(logger).Run(ctx, opts)
	}
	if err != nil {
		if res != nil {
			printWarning("stopped after %d pictures", res.Stats.Artifacts)
		}
		return err
	}

	printSummary(res)
	return nil
}

// runWithProgress runs the generation in a goroutine while a bubbletea
// program renders its events. Quitting the view cancels the run.
func runWithProgress(ctx context.Context, opts pipeline.Options, runner *pipeline.Runner) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(cancel), tea.WithOutput(os.Stderr))
	runner.Hooks = observability.Multi(observability.Generate(), teaHooks{send: p.Send})

	var (
		res    *pipeline.Result
		runErr error
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		res, runErr = runner.Run(ctx, opts)
		// Failures before the loop starts emit no completion event.
		p.Send(runDoneMsg{err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return res, errors.Wrap(errors.ErrCodeInternal, err, "progress view")
	}
	<-done
	return res, runErr
}
