package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Azhovan/formstate"
	"github.com/Azhovan/formstate/formconfig"
	"github.com/Azhovan/formstate/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an event script against a form and print the field states",
	Long: `Replay reads one event per line from --script (or stdin):

  focus FIELD
  change FIELD VALUE
  blur FIELD
  submit-error
  clear-submit-error
  reset
  show

Blank lines and lines starting with # are ignored.`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().String("script", "", "event script file (default: stdin)")
	replayCmd.Flags().Bool("json", false, "print the final snapshot as JSON")
	replayCmd.Flags().StringSlice("mask", nil, "fields whose values are masked in output")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := viper.GetString("form")
	if path == "" {
		return errors.New("--form is required")
	}

	logger, err := newLogger(viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	def, err := formconfig.Load(cmd.Context(), path, formconfig.Options{EnvPrefix: viper.GetString("env-prefix")})
	if err != nil {
		return err
	}

	values := formstate.NewMapValues(nil)
	engine, err := formconfig.Build(def, values, formstate.WithLogger(logger))
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if scriptPath, _ := cmd.Flags().GetString("script"); scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	steps, err := parseScript(in)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	masked, _ := cmd.Flags().GetStringSlice("mask")
	r := &replayer{
		engine: engine,
		values: values,
		out:    cmd.OutOrStdout(),
		theme:  render.DefaultTheme(),
		opts:   render.Options{Masked: masked},
		logger: logger,
	}

	for _, s := range steps {
		if err := r.apply(cmd, s); err != nil {
			return err
		}
	}

	if asJSON {
		return formstate.Dump(r.out, engine, formstate.AsJSON())
	}
	r.show()
	return nil
}

type replayer struct {
	engine *formstate.Engine
	values *formstate.MapValues
	out    io.Writer
	theme  render.Theme
	opts   render.Options
	logger *zap.Logger
}

// apply runs one step and waits for any validation it started, so replays are deterministic.
func (r *replayer) apply(cmd *cobra.Command, s step) error {
	ctx := cmd.Context()
	var (
		p   *formstate.Pending
		err error
	)

	switch s.op {
	case opFocus:
		err = r.engine.OnFocus(s.field)
	case opChange:
		r.values.Set(s.field, s.value)
		p, err = r.engine.OnChange(ctx, s.field, s.value)
	case opBlur:
		p, err = r.engine.OnBlur(ctx, s.field)
	case opSubmitError:
		r.engine.SetSubmitError()
	case opClearSubmitError:
		r.engine.ClearSubmitError()
	case opReset:
		r.engine.Reset()
	case opShow:
		r.show()
	}
	if err != nil {
		return fmt.Errorf("script line %d: %w", s.line, err)
	}

	if p != nil {
		if err := p.Wait(ctx); err != nil {
			return fmt.Errorf("script line %d: %w", s.line, err)
		}
		r.logger.Debug("step resolved", zap.Int("line", s.line), zap.String("field", s.field), zap.Bool("valid", p.Valid()))
	}
	return nil
}

func (r *replayer) show() {
	fmt.Fprint(r.out, render.Form(r.engine.Snapshot(), r.values, r.theme, r.opts))
}
