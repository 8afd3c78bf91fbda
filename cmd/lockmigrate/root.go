package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "lockmigrate",
	Short: "yarn.lock migration tool",
	Long:  "Lockmigrate parses yarn.lock v1 files and translates their dependency graphs into other lockfile formats.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("LOCKMIGRATE")
	viper.AutomaticEnv()
}
