package main

import (
	"github.com/spf13/cobra"

	"github.com/codenerd/chronicle/internal/config"
)

// configInitCmd scaffolds a YAML config file from config.DefaultConfig for
// a user to hand-edit. Reading it back in at runtime is out of scope (see
// outofscope.go's configLoadCmd); this only covers the write side.
var configInitCmd = &cobra.Command{
	Use:   "config-init <path>",
	Short: "write a default config file to path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.WriteDefault(args[0])
	},
}

func init() {
	rootCmd.AddCommand(configInitCmd)
}
