// SPDX-License-Identifier: MIT

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/matcalc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API",
	Long: `Serves POST /v1/matrix/:op, /health and /metrics.

Listen address, CORS origins and rate limits come from the [server] and
[rate_limit] config sections or MATCALC_SERVER_* / MATCALC_RATE_LIMIT_*.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if !app.cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(app.cfg, app.calc, app.log, app.metrics)
	app.log.Info("matcalc serving",
		zap.String("addr", app.cfg.Server.Addr()),
		zap.Int("max_dim", app.cfg.Limits.MaxDim),
	)

	return srv.Run(ctx)
}
