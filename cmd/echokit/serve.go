package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"echokit/internal/config"
	"echokit/internal/echo"
	"echokit/internal/handler"
	"echokit/internal/logging"
	"echokit/pkg/wsmanager"
)

var (
	serveConfigPath string
	servePort       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the WebSocket echo server",
	Long: `Starts the echo server: clients connect to /ws and every text frame
they send comes back to them (verbatim by default, or prefixed via the
echo.prefix config key). Binary frames are forwarded unless echo.drop_binary
is set. Each connection is isolated; nothing a client sends reaches any
other client.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to the YAML config file")
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)

	if cfg.Server.EnablePprof {
		go func() {
			logger.Info("starting pprof server", zap.String("port", cfg.Server.PprofPort))
			if err := http.ListenAndServe(":"+cfg.Server.PprofPort, nil); err != nil {
				logger.Warn("pprof server stopped", zap.Error(err))
			}
		}()
	}

	manager := wsmanager.NewManager(logger)
	defer manager.Close()

	policy := echo.NewPolicy(cfg.Echo)
	wsHandler := handler.NewWSHandler(manager, cfg, policy, logger)
	router := handler.NewRouter(wsHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// A bind failure is fatal; it surfaces here and exits non-zero.
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("server started",
		zap.String("port", cfg.Server.Port),
		zap.String("policy", policy.Name()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
