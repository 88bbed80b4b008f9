package paramslider

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	verbose    bool
	editorFile string
	appName    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "paramslider",
	Short: "Edit host parameters with sliders",
	Long: `paramslider opens a window with one slider per configured parameter.
Dragging or scrolling a slider edits the bound parameter through a single
begin/set/end gesture at a time; values are saved when the window closes.`,
	PersistentPreRun: preRun,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.paramslider.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory and working directory with name ".paramslider" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".paramslider")
	}
	viper.SetEnvPrefix("paramslider")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}
}

func preRun(cmd *cobra.Command, args []string) {
	bindFlags(cmd, args)

	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	} else {
		log.SetOutput(os.Stderr)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Printf("[CLI] Using config file: %s", used)
	}
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Config keys are camelCase; viper compares case-insensitively, so only the hyphens need removing.
		configName := strings.ReplaceAll(f.Name, "-", "")

		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				log.Printf("[CLI] Error setting flag %s: %s", f.Name, err)
				panic(err)
			}
		}
	})
}

// addEditorFlags 注册 run 和 params 共用的参数
func addEditorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&editorFile, "editor", "e", "",
		"Editor layout file (YAML); the built-in demo layout is used when empty")
	cmd.Flags().StringVar(&appName, "app-name", "paramslider",
		"Application name used for the saved-data directory")
}
