package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/scout/internal/industry"
)

func newIndustriesCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List available industry profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps(v, true)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			summaries, err := industry.NewCatalog(d.cfg.Paths.Industries).Summaries()
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No industry profiles found in %s\n", d.cfg.Paths.Industries)
				return nil
			}

			renderIndustries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}
}

func renderIndustries(w io.Writer, summaries []industry.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Slug", "Name", "Keywords", "Locations", "Pain Points", "Error"})

	for _, s := range summaries {
		t.AppendRow(table.Row{s.Slug, s.Name, s.Keywords, s.Locations, s.PainPoints, s.Err})
	}
	t.Render()
}
