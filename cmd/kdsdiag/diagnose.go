package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/irongatelabs/kds-bridge/bridge"
)

var tunablesPath string

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Print the bridge's current diagnostics record as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := bridge.LoadConfig(tunablesPath)
		if err != nil {
			logrus.Fatalf("Failed to load tunables: %v", err)
		}
		rt := bridge.NewRuntime(cfg)
		lookup, err := bridge.OpenPluginSymbolLookup(acceleratorPluginPath)
		if err != nil {
			logrus.Debugf("No accelerator plugin loaded: %v", err)
			rt.Discover(bridge.MapSymbolLookup{})
		} else {
			rt.Discover(lookup)
		}

		diag := bridge.Diagnose(rt)
		data, err := yaml.Marshal(diag)
		if err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
		fmt.Print(string(data))
	},
}

var acceleratorPluginPath string

func init() {
	diagnoseCmd.Flags().StringVar(&tunablesPath, "tunables", "", "Path to a tunable defaults YAML file")
	diagnoseCmd.Flags().StringVar(&acceleratorPluginPath, "accelerator-plugin", "", "Path to the compiled accelerator plugin")

	rootCmd.AddCommand(diagnoseCmd)
}
