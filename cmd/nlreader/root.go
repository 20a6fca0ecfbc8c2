package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "nlreader",
	Short: "Inspect AMPL .nl problem files",
	Long:  "nlreader reads the header and segment structure of text .nl files and reports what it finds.",

	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("format", "f", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("color", "auto", "Colorize diagnostics: auto, always, never")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Trace reader progress on stderr")
	rootCmd.PersistentFlags().Bool("lint", false, "Check header arithmetic after reading")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("lint", rootCmd.PersistentFlags().Lookup("lint"))
}

func initConfig() {
	viper.SetEnvPrefix("NLREADER")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// options is the resolved CLI configuration shared by all commands.
type options struct {
	format  string
	color   string
	verbose bool
	lint    bool
}

func loadOptions() options {
	return options{
		format:  viper.GetString("format"),
		color:   viper.GetString("color"),
		verbose: viper.GetBool("verbose"),
		lint:    viper.GetBool("lint"),
	}
}
