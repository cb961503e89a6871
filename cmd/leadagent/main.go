package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"leadagent/internal/agent"
	"leadagent/internal/config"
	"leadagent/internal/leads"
	"leadagent/internal/llm"
	"leadagent/internal/logging"
	"leadagent/internal/render"
	"leadagent/internal/server"
	"leadagent/internal/session"
	"leadagent/internal/tools"
)

var (
	port      int
	dataDir   string
	staticDir string
)

func main() {
	root := &cobra.Command{
		Use:   "leadagent",
		Short: "Configurable lead-capture chat agent",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	serve.Flags().IntVar(&port, "port", 8000, "HTTP listen port")
	serve.Flags().StringVar(&dataDir, "data-dir", "data", "directory for config, sessions and leads")
	serve.Flags().StringVar(&staticDir, "static-dir", "static", "directory served at /static (flyer asset root)")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe() error {
	logger := logging.NewComponentLogger("Main")

	llmCfg := llm.ConfigFromEnv()
	if llmCfg.APIKey == "" {
		logger.Warn("MISTRAL_API_KEY is not set; chat requests will fail with a connectivity apology")
	}
	smtpCfg := tools.SMTPConfigFromEnv()
	if smtpCfg.Degraded() {
		logger.Warn("email credentials not set; outbound mail runs in degraded (log-only) mode")
	}

	configStore := config.NewStore(dataDir)
	sessionStore := session.NewStore(filepath.Join(dataDir, "sessions"))
	leadStore := leads.NewStore(dataDir)
	renderer := render.NewFlyerRenderer(staticDir)
	mailer := tools.NewMailer(smtpCfg)
	registry := tools.NewRegistry(leadStore, mailer, renderer)
	orchestrator := agent.New(llm.NewOpenAIClient(llmCfg), configStore, registry)

	srv := server.New(orchestrator, sessionStore, configStore, leadStore, staticDir)
	return srv.Run(fmt.Sprintf(":%d", port))
}
