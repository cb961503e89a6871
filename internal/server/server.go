package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"leadagent/internal/agent"
	"leadagent/internal/config"
	"leadagent/internal/leads"
	"leadagent/internal/logging"
	"leadagent/internal/session"
)

// Server is the HTTP delivery layer: the chat endpoint, operator
// configuration endpoints, and static serving of the UI and rendered flyers.
type Server struct {
	engine       *gin.Engine
	orchestrator *agent.Orchestrator
	sessions     *session.Store
	configStore  *config.Store
	leadStore    *leads.Store
	staticDir    string
	logger       logging.Logger
}

// New assembles the router. staticDir is served at /static and doubles as the
// flyer asset root.
func New(orchestrator *agent.Orchestrator, sessions *session.Store, configStore *config.Store, leadStore *leads.Store, staticDir string) *Server {
	s := &Server{
		engine:       gin.New(),
		orchestrator: orchestrator,
		sessions:     sessions,
		configStore:  configStore,
		leadStore:    leadStore,
		staticDir:    staticDir,
		logger:       logging.NewComponentLogger("Server"),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	s.engine.Static("/static", staticDir)
	s.engine.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "index.html"))
	})

	api := s.engine.Group("/api")
	api.POST("/chat", s.handleChat)
	api.GET("/config", s.handleGetConfig)
	api.POST("/config", s.handleUpdateConfig)
	api.GET("/presets", s.handlePresets)
	api.POST("/presets/apply", s.handleApplyPreset)
	api.POST("/knowledge", s.handleKnowledge)
	api.GET("/analytics", s.handleAnalytics)

	return s
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening on %s", addr)
	return s.engine.Run(addr)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
