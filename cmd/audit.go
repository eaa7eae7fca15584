package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/scout/internal/audit"
	"github.com/jonesrussell/scout/internal/bootstrap"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/pipeline"
)

type auditFlags struct {
	industry  string
	targets   string
	inline    string
	limit     int
	dryRun    bool
	notes     string
	keywords  []string
	locations []string
}

func newAuditCommand(v *viper.Viper) *cobra.Command {
	var f auditFlags

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a list of websites for an industry",
		Example: `  scout audit --industry law_firms --targets targets/toronto.txt --limit 10
  scout audit --industry plumbers --inline "a-plumbing.ca" --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.targets == "" && f.inline == "" {
				return audit.ErrNoTargetSource
			}

			d, err := loadDeps(v, true)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			app, err := bootstrap.New(cmd.Context(), d.cfg, d.log)
			if err != nil {
				return err
			}

			req := audit.Request{
				Industry:   f.industry,
				TargetFile: f.targets,
				Inline:     f.inline,
				Limit:      f.limit,
				DryRun:     f.dryRun,
				Notes:      f.notes,
				Keywords:   f.keywords,
				Locations:  f.locations,
			}

			summary, err := follow[pipeline.Summary](cmd.OutOrStdout(), app.Runner.Start(cmd.Context(), app.Audits.Job(req)))
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.industry, "industry", "i", "", "industry profile slug (required)")
	flags.StringVarP(&f.targets, "targets", "t", "", "targets file (.txt, .csv or .xlsx)")
	flags.StringVar(&f.inline, "inline", "", "newline-separated targets")
	flags.IntVarP(&f.limit, "limit", "n", 0, "maximum number of targets (0 for all)")
	flags.BoolVar(&f.dryRun, "dry-run", false, "list targets without any network or LLM calls")
	flags.StringVar(&f.notes, "notes", "", "free-form notes stored with the report")
	flags.StringSliceVar(&f.keywords, "keywords", nil, "extra search keywords")
	flags.StringSliceVar(&f.locations, "locations", nil, "extra locations")
	_ = cmd.MarkFlagRequired("industry")

	return cmd
}

// follow prints a job's log lines to w and returns its result.
func follow[T any](w io.Writer, job *jobs.Job) (T, error) {
	var zero T
	for ev := range job.Events() {
		switch ev.Kind {
		case jobs.KindLog:
			fmt.Fprintln(w, ev.Text)
		case jobs.KindError:
			return zero, errors.New(ev.Text)
		case jobs.KindDone:
			result, ok := ev.Result.(T)
			if !ok {
				return zero, fmt.Errorf("unexpected job result %T", ev.Result)
			}
			return result, nil
		case jobs.KindPing:
		}
	}
	return zero, errors.New("job interrupted")
}

func renderSummary(w io.Writer, s pipeline.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Audit summary")

	t.AppendRows([]table.Row{
		{"Industry", s.Industry},
		{"Run", s.RunID},
		{"Targets", s.Total},
		{"Audited", s.Audited},
		{"Failed", s.Failed},
		{"Skipped", s.Skipped},
		{"High priority", s.HighPriority},
		{"Duration", s.Duration.Round(time.Millisecond)},
	})
	if s.DryRun {
		t.AppendRow(table.Row{"Mode", "dry run"})
	}

	names := make([]string, 0, len(s.Reports))
	for name := range s.Reports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AppendRow(table.Row{"Report (" + name + ")", s.Reports[name]})
	}
	if s.ReportError != "" {
		t.AppendRow(table.Row{"Report error", s.ReportError})
	}

	t.Render()
}
