package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/scout/internal/bootstrap"
	"github.com/jonesrussell/scout/internal/logger"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps(v, false)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			if port > 0 {
				d.cfg.Server.Port = port
			}
			if d.cfg.Server.Debug {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			app, err := bootstrap.New(cmd.Context(), d.cfg, d.log)
			if err != nil {
				return err
			}

			d.log.Info("Starting scout",
				logger.String("version", bootstrap.Version),
				logger.String("industries", d.cfg.Paths.Industries),
				logger.String("reports", d.cfg.Paths.Reports),
			)

			if err = app.Server().Run(cmd.Context()); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			d.log.Info("scout stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}
