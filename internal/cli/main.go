package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Main() {
	root := &cobra.Command{
		Use:          "clipper",
		Short:        "Turn uploaded videos into short highlight clips",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.AddCommand(
		serveCmd(),
		uploadCmd(),
		probeCmd(),
		transcribeCmd(),
		highlightsCmd(),
		clipsCmd(),
		statusCmd(),
		listCmd(),
		reapCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
