package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opariffazman/lazyrec/internal/config"
	"github.com/opariffazman/lazyrec/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lazyrec",
		Short: "Record, auto-edit, and export screen captures",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file directory (default: .)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRecordCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newProjectCmd())

	return root
}

func loadConfig() (*config.Config, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Options{Level: level})

	dirs := []string{"."}
	if cfgFile != "" {
		dirs = []string{cfgFile}
	}
	return config.Load(viper.New(), dirs)
}
