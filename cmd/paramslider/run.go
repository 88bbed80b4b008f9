package paramslider

import (
	"fmt"

	"github.com/gonewx/paramslider/pkg/app"
	"github.com/spf13/cobra"
)

var noPersist bool

// runCmd opens the editor window.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the slider editor window",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := app.NewApp(app.Config{
			Verbose:    verbose,
			ConfigPath: editorFile,
			AppName:    appName,
			NoPersist:  noPersist,
		})
		if err != nil {
			return fmt.Errorf("could not start editor: %w", err)
		}
		return a.Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addEditorFlags(runCmd)

	runCmd.Flags().BoolVar(&noPersist, "no-persist", false,
		"Do not load or save parameter values and window state")
}
