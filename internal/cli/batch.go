package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/config"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// batchCommand creates the batch command, which runs every job of a
// configuration file.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		workers int
		output  string
		store   bool
	)

	cmd := &cobra.Command{
		Use:   "batch [config.toml]",
		Short: "Run the jobs of a configuration file in parallel",
		Long: `Run the sweep and the [[job]] entries of a configuration file.

Artifacts are written to the output directory as <name>.<algorithm>.<format>.
Jobs that fail on their input (for example an exhausted visibility search)
are reported in the summary and do not fail the command; I/O errors do.

Example config:
  [batch]
  workers = 4

  [batch.sweep]
  vertices   = [50, 100, 200]
  algorithms = ["a", "b"]
  seeds      = { from = 1, count = 10 }`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if len(args) == 1 {
				var err error
				if cfg, err = config.Load(args[0]); err != nil {
					return err
				}
				c.Config = cfg
			} else if c.configPath == "" {
				return fmt.Errorf("batch needs a configuration file")
			}
			if cmd.Flags().Changed("workers") {
				cfg.Batch.Workers = workers
			}
			if output != "" {
				dir, err := absPath(output)
				if err != nil {
					return err
				}
				cfg.Output.Dir = dir
			}
			return c.runBatch(cmd.Context(), cfg, store)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent jobs (default: config value or number of CPUs)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: config value)")
	cmd.Flags().BoolVar(&store, "store", false, "save drawings to the configured store")
	return cmd
}

func (c *CLI) runBatch(ctx context.Context, cfg config.Config, withStore bool) error {
	jobs := cfg.Jobs()
	if len(jobs) == 0 {
		c.printWarning("No jobs in configuration")
		return nil
	}
	runner, err := c.newRunner(ctx, nil, withStore)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(context.Background())

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Running %d jobs...", len(jobs)))
	spinner.Start()

	var done atomic.Int32
	results := runner.RunBatch(ctx, jobs, cfg.Batch.Workers, func(r pipeline.BatchResult) {
		n := done.Add(1)
		spinner.Update(fmt.Sprintf("Running jobs... %d/%d", n, len(jobs)))
		if r.Err != nil {
			c.Logger.Debug("job failed", "name", r.Name, "error", r.Err)
		}
	})
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	var written int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		base := filepath.Join(cfg.Output.Dir, r.Name+"."+r.Result.Drawing.Algorithm)
		paths, err := writeArtifacts(r.Result.Artifacts, jobs[r.Index].Formats, base)
		if err != nil {
			return err
		}
		written += len(paths)
	}

	summary := pipeline.Summarize(results)
	prog.done("batch complete", "jobs", summary.Total, "succeeded", summary.Succeeded)
	c.printBatchSummary(results, summary)
	c.printDetail("%d files in %s", written, cfg.Output.Dir)

	for _, r := range results {
		if r.Err != nil && !r.Failed() {
			return fmt.Errorf("job %s: %w", r.Name, r.Err)
		}
	}
	return nil
}

func (c *CLI) printBatchSummary(results []pipeline.BatchResult, s pipeline.BatchSummary) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status, detail := "ok", ""
		switch {
		case r.Err != nil:
			status, detail = string(codeOf(r.Err)), gerr.UserMessage(r.Err)
		case r.Result != nil:
			detail = fmt.Sprintf("%d×%d", r.Result.Stats.Width, r.Result.Stats.Height)
		}
		rows = append(rows, []string{
			r.Name, status, detail, r.Duration.Round(time.Millisecond).String(),
		})
	}
	c.printTable([]string{"instance", "status", "grid", "time"}, rows)
	c.printNewline()

	if s.Succeeded == s.Total {
		c.printSuccess("%d/%d jobs succeeded", s.Succeeded, s.Total)
		return
	}
	c.printWarning("%d/%d jobs succeeded", s.Succeeded, s.Total)
	codes := make([]gerr.Code, 0, len(s.ByCode))
	for code := range s.ByCode {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		c.printDetail("%s: %s", code, strconv.Itoa(s.ByCode[code]))
	}
}

func codeOf(err error) gerr.Code {
	if code := gerr.GetCode(err); code != "" {
		return code
	}
	return gerr.ErrCodeInternal
}
