package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/jobdash/jobdash/internal/api/v1/handlers"
	"github.com/jobdash/jobdash/internal/api/v1/middleware"
	"github.com/jobdash/jobdash/internal/api/v1/routes"
	"github.com/jobdash/jobdash/internal/dashboard"
	"github.com/jobdash/jobdash/internal/logger"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen := cfg.Server.Listen
			if cmd.Flags().Changed("listen") {
				listen, _ = cmd.Flags().GetString("listen")
			}

			d := dashboard.New(getAPIClient(), dashboard.Options{PollInterval: cfg.Poll.Interval})
			defer d.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := d.Mount(ctx); err != nil {
				logger.Warnf("dashboard loaded with errors: %v", err)
			}

			app := newServerApp(d)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := app.ShutdownWithContext(shutdownCtx); err != nil {
					logger.Errorf("server shutdown: %v", err)
				}
			}()

			logger.Infof("dashboard listening on %s", listen)
			return app.Listen(listen)
		},
	}

	serveCmd.Flags().String("listen", routes.DefaultListen, "Address to listen on (env: JOBDASH_SERVER_LISTEN)")
	return serveCmd
}

// newServerApp wires the dashboard routes into a fiber app
func newServerApp(d *dashboard.Composer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jobdash",
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	routes.RegisterRoutes(app, handlers.NewDashboardHandler(d))
	return app
}
