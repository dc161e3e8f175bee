package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "htmlidx",
	Short: "Build and query an on-disk inverted index over an HTML corpus",
	Long: `htmlidx builds an inverted index over a directory of HTML documents
using external merge sort, then answers Boolean and cosine-similarity
ranked queries against it.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./htmlidx.yaml)")
	rootCmd.PersistentFlags().String("index-dir", "./htmlidx-index", "directory the index is built into and read from")
	rootCmd.PersistentFlags().Int("tmp-limit", 0, "postings buffered in memory before a spill (0 = default)")
	viper.BindPFlag("index-dir", rootCmd.PersistentFlags().Lookup("index-dir"))
	viper.BindPFlag("tmp-limit", rootCmd.PersistentFlags().Lookup("tmp-limit"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("htmlidx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("HTMLIDX")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, color.HiBlackString("using config file: %s", viper.ConfigFileUsed()))
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
