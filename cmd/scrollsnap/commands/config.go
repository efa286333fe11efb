package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/likx/scrollsnap/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scrollsnap configuration",
	Long:  `View and manage scrollsnap configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Example: `  # Show configuration as YAML (default)
  scrollsnap config show

  # Show configuration as JSON
  scrollsnap config show --format json`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Example: `  # Raise the per-frame settle delay
  scrollsnap config set scroll_delay_ms 600

  # Exclude a taller sticky header from overlap matching
  scrollsnap config set scroll_ignore_top 0.25`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configFormat string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format (yaml or json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	mgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return err
	}

	var data []byte
	switch configFormat {
	case "json":
		data, err = json.MarshalIndent(mgr.Get(), "", "  ")
	case "yaml":
		data, err = yaml.Marshal(mgr.Get())
	default:
		return fmt.Errorf("unsupported format: %s", configFormat)
	}
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n", mgr.Path())
	os.Stdout.Write(data)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	mgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return err
	}

	value, err := mgr.GetValue(args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	mgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return err
	}

	if err := mgr.SetValue(args[0], args[1]); err != nil {
		return err
	}
	if err := mgr.Save(); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", args[0], args[1])
	return nil
}
