package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/likx/scrollsnap/internal/capture"
	"github.com/likx/scrollsnap/internal/display"
	"github.com/likx/scrollsnap/internal/scroller"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check scroll-capture capabilities on this system",
	Long: `Probe the display server, capture backend, and scroll-injection tool
that a scroll capture would use, and report what is missing.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	server := display.Detect()
	fmt.Printf("Display server:    %s\n", server)
	fmt.Printf("Template matching: OpenCV %s\n", gocv.OpenCVVersion())

	ok := true

	router, err := capture.NewRouter(server)
	if err != nil {
		fmt.Printf("Capture backend:   ✗ %v\n", err)
		ok = false
	} else {
		fmt.Printf("Capture backend:   ✓ %s\n", router.Backend().Name())
		router.Close()
	}

	scr, err := scroller.New(server)
	if err != nil {
		fmt.Printf("Scroll injection:  ✗ %v\n", err)
		ok = false
	} else {
		fmt.Printf("Scroll injection:  ✓ %s\n", scr.Name())
	}

	if !ok {
		return fmt.Errorf("scroll capture is not available on this system")
	}
	fmt.Println("\nScroll capture is available.")
	return nil
}
