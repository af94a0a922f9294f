package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tbramley/jobrun/internal/job"
)

// TODO: Inject version at build time.
const version = "0.1.0"

type config struct {
	title        string
	dir          string
	env          []string
	inputs       []string
	outputs      []string
	encoding     string
	decodeErrors string
	show         string
	summary      bool
	debug        bool
}

type cli struct {
	logger *slog.Logger
}

func newCLI() *cli {
	return &cli{}
}

func (c *cli) rootCmd() *cobra.Command {
	cfg := &config{}

	command := &cobra.Command{
		Use:          "jobrun [flags] PROGRAM [ARGS]",
		Short:        "Run a program as a supervised job with categorized output",
		Example:      "  jobrun --title engrave -- lilypond score.ly",
		Version:      version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runJob(cmd, cfg, args)
		},
	}

	// Stop parsing args after the first positional so that flags passed to
	// the supervised program are not interpreted by the jobrun CLI and are
	// passed as-is, e.g. `-f` is an argument to `tail` _not_ to `jobrun`:
	//	`jobrun tail -f server.log`
	command.Flags().SetInterspersed(false)

	command.CompletionOptions.HiddenDefaultCmd = true

	command.Flags().StringVar(
		&cfg.title,
		"title",
		"",
		"Display name used in status messages (defaults to the program name)",
	)

	command.Flags().StringVar(
		&cfg.dir,
		"dir",
		"",
		"Working directory for the program (skipped if it does not exist)",
	)

	command.Flags().StringArrayVar(
		&cfg.env,
		"env",
		nil,
		"Environment override, NAME=VALUE to set or NAME to unset (repeatable)",
	)

	command.Flags().StringArrayVar(
		&cfg.inputs,
		"input",
		nil,
		"Input file appended to the command line (repeatable)",
	)

	command.Flags().StringArrayVar(
		&cfg.outputs,
		"output",
		nil,
		"Output file appended to the command line (repeatable)",
	)

	command.Flags().StringVar(
		&cfg.encoding,
		"encoding",
		"",
		"IANA name of the encoding used to decode process output (default latin1)",
	)

	command.Flags().StringVar(
		&cfg.decodeErrors,
		"decode-errors",
		"strict",
		"Policy for undecodable output bytes: strict, replace or ignore",
	)

	command.Flags().StringVar(
		&cfg.show,
		"show",
		"all",
		"Categories to print live: comma-separated list of stdout, stderr, neutral, success, failure, output, status, all",
	)

	command.Flags().BoolVar(
		&cfg.summary,
		"summary",
		false,
		"Print a result summary after the job has finished",
	)

	command.Flags().BoolVar(&cfg.debug, "debug", false, "Enable debug logs")

	return command
}

func (c *cli) runJob(cmd *cobra.Command, cfg *config, args []string) error {
	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(
		cmd.ErrOrStderr(),
		&slog.HandlerOptions{Level: level},
	))

	j, mask, err := configureJob(cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	j.OnOutput(func(text string, category job.Category) {
		if category&mask == 0 {
			return
		}
		if category&job.Status != 0 {
			// Status messages carry no newline of their own.
			fmt.Fprintln(out, text)
			return
		}
		fmt.Fprint(out, text)
	})

	j.OnStarted(func() {
		c.logger.Debug("process confirmed started", "name", j.DisplayName())
	})

	if err := j.Start(); err != nil {
		return err
	}

	select {
	case <-cmd.Context().Done():
		c.logger.Debug("interrupted, aborting job", "name", j.DisplayName())
		j.Abort()
		<-j.Done()
	case <-j.Done():
	}

	if cfg.summary {
		printSummary(out, j)
	}

	if j.Outcome() != job.OutcomeSuccess {
		return errors.New("job failed")
	}

	return nil
}

// configureJob builds a Job from the parsed flags and returns it together
// with the live display mask.
func configureJob(cfg *config, args []string) (*job.Job, job.Category, error) {
	j := job.New(args...)

	j.SetTitle(cfg.title)
	j.SetDirectory(cfg.dir)

	for _, override := range cfg.env {
		if name, value, ok := strings.Cut(override, "="); ok {
			j.SetEnv(name, value)
		} else {
			j.UnsetEnv(override)
		}
	}

	j.SetInput(job.Files(cfg.inputs...))
	j.SetOutput(job.Files(cfg.outputs...))

	if cfg.encoding != "" {
		enc, err := job.LookupEncoding(cfg.encoding)
		if err != nil {
			return nil, 0, err
		}
		j.SetEncoding(enc)
	}

	policy, err := job.ParsePolicy(cfg.decodeErrors)
	if err != nil {
		return nil, 0, err
	}
	j.SetDecodePolicy(policy)

	mask, err := job.ParseCategory(cfg.show)
	if err != nil {
		return nil, 0, err
	}

	return j, mask, nil
}

func printSummary(w io.Writer, j *job.Job) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "OUTCOME\tERROR\tABORTED\tELAPSED\t\n")
	fmt.Fprintf(
		tw,
		"%s\t%s\t%t\t%s\t\n",
		j.Outcome(),
		j.LastError(),
		j.IsAborted(),
		job.FormatElapsed(j.ElapsedTime()),
	)

	tw.Flush()
}
