package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quadroute",
	Short: "Quadroute milk delivery backend",
	Long: `A backend service for milk delivery management: customers, stores,
vehicles and orders for the delivery schema, plus the dairy distribution
domain, exposed over an HTTP API with a background indexing worker.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			log.Error().Err(err).Msg("Failed to display help")
		}
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize()
}
