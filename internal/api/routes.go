package api

import (
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"scenario-planner/internal/analysis"
	"scenario-planner/internal/llm"
	"scenario-planner/internal/store"
)

// Config defines server dependencies.
type Config struct {
	AllowedOrigins []string
	LLMConfig      llm.Config
	MockOnFail     bool
	UsageDBPath    string
	SilentDB       bool
}

// Server wires HTTP handlers with the scenario pipeline.
type Server struct {
	gateway        *llm.Client
	analyzer       *analysis.Analyzer
	usage          *store.Database
	allowedOrigins []string
	mockOnFail     bool
	calls          atomic.Int64
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	gateway := llm.NewClient(cfg.LLMConfig)
	if gateway.Mock() {
		logrus.Info("completion gateway running in mock mode")
	} else {
		logrus.WithFields(logrus.Fields{
			"provider": gateway.Provider(),
			"model":    gateway.Model(),
		}).Info("completion gateway configured")
	}

	var usage *store.Database
	if cfg.UsageDBPath != "" {
		db, err := store.Open(cfg.UsageDBPath, cfg.SilentDB)
		if err != nil {
			return nil, err
		}
		usage = db
		logrus.WithField("path", cfg.UsageDBPath).Info("usage ledger enabled")
	}

	return &Server{
		gateway:        gateway,
		analyzer:       analysis.New(gateway, cfg.MockOnFail),
		usage:          usage,
		allowedOrigins: cfg.AllowedOrigins,
		mockOnFail:     cfg.MockOnFail,
	}, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	return s.usage.Close()
}

// Router configures gin routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.POST("/simulate", s.handleSimulate)
	r.GET("/health", s.handleHealth)
	r.GET("/config", s.handleConfig)
	r.GET("/metrics", s.handleMetrics)

	return r
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req analysis.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	call := s.calls.Add(1)
	start := time.Now()
	logrus.WithFields(logrus.Fields{
		"call":     call,
		"scenario": truncate(req.Scenario, 100),
		"mock":     s.gateway.Mock(),
	}).Info("scenario received")

	result, err := s.analyzer.Run(c.Request.Context(), req)
	if err != nil {
		var upErr *llm.UpstreamError
		if errors.As(err, &upErr) {
			logrus.WithFields(logrus.Fields{
				"call":   call,
				"status": upErr.Status,
			}).Error("upstream rejected request")
			c.JSON(http.StatusBadGateway, gin.H{"error": upErr.Body, "path": c.Request.URL.Path})
			return
		}
		logrus.WithError(err).WithField("call", call).Error("scenario analysis failed")
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	if s.usage != nil {
		if err := s.usage.RecordCall(string(result.Classification)); err != nil {
			logrus.WithError(err).Warn("record usage count")
		}
	}

	logrus.WithFields(logrus.Fields{
		"call":           call,
		"classification": result.Classification,
		"overall":        result.Scores.Overall,
		"decision":       result.Recommendation.Decision,
		"elapsed_ms":     time.Since(start).Milliseconds(),
	}).Info("scenario analyzed")

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	provider := s.gateway.Provider()
	if provider == "" {
		provider = "mock"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"llm_provider":  provider,
		"llm_model":     s.gateway.Model(),
		"llm_mock_mode": s.gateway.Mock(),
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"provider":     s.gateway.Provider(),
		"api_base":     s.gateway.BaseURL(),
		"model":        s.gateway.Model(),
		"has_api_key":  s.gateway.HasKey(),
		"mock_on_fail": s.mockOnFail,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	payload := gin.H{"api_calls": s.calls.Load()}
	if s.usage != nil {
		totals, err := s.usage.Totals()
		if err != nil {
			s.renderError(c, http.StatusInternalServerError, err)
			return
		}
		payload["by_classification"] = totals
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error(), "path": c.Request.URL.Path})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
