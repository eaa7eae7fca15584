package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/scout/internal/advisor"
	"github.com/jonesrussell/scout/internal/bootstrap"
)

const advisoryPreview = 800

func newAdviseCommand(v *viper.Viper) *cobra.Command {
	var req advisor.Request

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Write a pre-flight market brief for an industry",
		Example: `  scout advise --industry law_firms
  scout advise --industry law_firms --notes "Focus on bilingual sites"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps(v, true)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			app, err := bootstrap.New(cmd.Context(), d.cfg, d.log)
			if err != nil {
				return err
			}

			res, err := follow[advisor.Result](cmd.OutOrStdout(), app.Runner.Start(cmd.Context(), app.Advisor.Job(req)))
			if err != nil {
				return err
			}
			renderAdvisory(cmd.OutOrStdout(), filepath.Join(d.cfg.Paths.Reports, filepath.FromSlash(res.Path)), res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Industry, "industry", "i", "", "industry profile slug (required)")
	flags.StringVar(&req.Notes, "notes", "", "extra context added to the advisory prompt")
	_ = cmd.MarkFlagRequired("industry")

	return cmd
}

func renderAdvisory(w io.Writer, path string, res advisor.Result) {
	fmt.Fprintf(w, "\nAdvisory saved: %s\n", path)
	if res.Degraded {
		fmt.Fprintf(w, "Built from the profile only: %s\n", res.Reason)
	}

	preview := []rune(res.Markdown)
	if len(preview) > advisoryPreview {
		fmt.Fprintf(w, "\n%s...\n", string(preview[:advisoryPreview]))
		return
	}
	fmt.Fprintf(w, "\n%s", res.Markdown)
}
