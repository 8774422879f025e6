// golp is a CLI tool to solve MILP problems described in golp's problem file
// formats (JSON for hand-written files, CBOR for serialized ones).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "golp",
	Short: "golp dispatches MILP problems to interchangeable solver engines",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file with solve defaults (default: ./golp.yaml, if present)")

	cobra.OnInitialize(func() {
		if path, _ := rootCmd.PersistentFlags().GetString("config"); path != "" {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
		viper.SetConfigName("golp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		// a missing default config file is fine
		_ = viper.ReadInConfig()
	})
}
