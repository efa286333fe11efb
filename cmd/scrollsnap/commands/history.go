package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/likx/scrollsnap/internal/config"
	"github.com/likx/scrollsnap/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent captures",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	configDir, err := config.Dir()
	if err != nil {
		return err
	}

	store := history.NewStore(filepath.Join(configDir, "history.json"))
	entries, err := store.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No captures recorded yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %4d frames  %dx%d  %s\n",
			e.CapturedAt.Format("2006-01-02 15:04:05"),
			e.FrameCount, e.Width, e.Height, e.Path)
	}
	return nil
}
