package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atobarai",
	Short: "NP Atobarai deferred-payment microservice",
	Long:  "A microservice that registers, voids and health-checks NP Atobarai deferred-payment transactions.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
