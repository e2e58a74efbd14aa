package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type fileError struct {
	name string
	err  error
}

func (e *fileError) Error() string {
	return fmt.Sprintf("%q: %v", e.name, e.err)
}

func (e *fileError) Unwrap() error {
	return e.err
}

var flagVerbose bool

var cmdRoot = cobra.Command{
	Use:           "atlaspack",
	Short:         "Atlaspack packs images into texture atlas pages.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	cmdRoot.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show debug messages")
	cmdRoot.AddCommand(&cmdPack, &cmdInspect, &cmdSlice)
	if err := cmdRoot.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
