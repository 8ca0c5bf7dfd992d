package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-origami/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file and flags are applied,
as YAML. Save the output to ~/.origami/configs/origami.yaml to customise
it.

Examples:
  origami config
  origami config --defaults > ~/.origami/configs/origami.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	out, err := yaml.Marshal(appConfig)
	if err != nil {
		exitf("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
