package cmd

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider/atobarai"
	"github.com/vibast-solutions/ms-go-atobarai/config"
)

var checkCredentialsCmd = &cobra.Command{
	Use:   "check-credentials",
	Short: "Probe NP Atobarai with the configured merchant credentials",
	Run:   runCheckCredentials,
}

func init() {
	rootCmd.AddCommand(checkCredentialsCmd)
}

func runCheckCredentials(_ *cobra.Command, _ []string) {
	cfg := config.LoadWithoutDatabase()
	mustConfigureLogging(cfg)

	apiCfg := apiConfig(cfg)
	gateway := atobarai.NewGateway(atobarai.NewClient(&http.Client{}), nil, nil)
	np := atobarai.NewProvider(gateway, apiCfg)

	entry := logrus.WithFields(logrus.Fields{
		"run_id":    uuid.NewString(),
		"provider":  np.Code(),
		"test_mode": apiCfg.TestMode,
		"url":       apiCfg.URL(""),
	})

	if !np.HealthCheck(context.Background()) {
		entry.Error("credentials_rejected")
		os.Exit(1)
	}
	entry.Info("credentials_accepted")
}
