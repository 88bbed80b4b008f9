package paramslider

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gonewx/paramslider/pkg/app"
	"github.com/gonewx/paramslider/pkg/editor"
	"github.com/gonewx/paramslider/pkg/params"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
)

var noSaved bool

// paramsCmd lists the configured parameters with their saved values.
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List configured parameters and their saved values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := app.LoadEditorConfig(editorFile)
		if err != nil {
			return err
		}

		var gdataManager *gdata.Manager
		if !noSaved {
			gdataManager, err = gdata.Open(gdata.Config{AppName: appName})
			if err != nil {
				return fmt.Errorf("could not open saved data for %s: %w", appName, err)
			}
		}

		store := params.NewStore(gdataManager)
		if err := editor.RegisterParams(store, cfg.Params); err != nil {
			return err
		}
		if err := store.Load(); err != nil {
			return err
		}

		return printParams(cmd.OutOrStdout(), store.All())
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	addEditorFlags(paramsCmd)

	paramsCmd.Flags().BoolVar(&noSaved, "defaults", false,
		"Show default values instead of saved values")
}

// printParams 以表格形式输出参数
func printParams(out io.Writer, ps []params.Param) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tVALUE\tNORMALIZED\tDEFAULT")
	for _, p := range ps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%s\n",
			p.ID(), p.Name(), p.Kind(), p.Format(p.Normalized()), p.Normalized(), p.Format(p.DefaultNormalized()))
	}
	return w.Flush()
}
