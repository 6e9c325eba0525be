package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"triagem/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

// serveCmd runs the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the classification HTTP API server",
	Long: `Starts an HTTP server exposing the batch classification endpoint.
Model artifacts are loaded once at startup; if they are missing, the server
still starts but rejects classification requests with 503 until they exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		router := gin.Default() // logger and recovery middleware

		apiHandler := apihandlers.NewAPIHandler(appInstance.Pipeline)
		router.POST("/processText", apiHandler.ProcessTextHandler)
		router.GET("/health", apiHandler.HealthHandler)

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Addr
		}
		port := servePort
		if port == "" {
			port = appInstance.Config.Server.Port
		}
		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("Starting triagem API server on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (defaults to server.addr from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (defaults to server.port from config)")
}
