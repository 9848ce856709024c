package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/maxaizer/placement-portal/internal/services"
	log "github.com/sirupsen/logrus"
)

type Services struct {
	Jobs          *services.JobsService
	Applications  *services.ApplicationsService
	Users         *services.UsersService
	Notifications *services.NotificationsService
	Mails         *services.MailsService
	JobUpdates    *services.JobUpdatesService
	Resumes       *services.ResumesService
}

type healthChecker func(ctx context.Context) error

type Server struct {
	cfg        config.ServerConfig
	services   Services
	health     healthChecker
	engine     *gin.Engine
	httpServer *http.Server
	rpc        map[string]rpcHandler
}

func NewServer(cfg config.ServerConfig, svc Services, health healthChecker) *Server {
	gin.SetMode(cfg.Mode)

	s := &Server{cfg: cfg, services: svc, health: health, engine: gin.New()}
	s.rpc = s.rpcHandlers()
	s.routes()

	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.engine.Use(recovery(), requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(s.cfg.CorsOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.CorsOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", s.cfg.IdentityHeader}
	s.engine.Use(cors.New(corsConfig))

	s.engine.GET("/healthz", s.healthz)

	webhooks := s.engine.Group("/", webhookAuth(s.cfg.WebhookSecret))
	{
		webhooks.POST("/saveMail", s.saveMail)
		webhooks.POST("/createJob", s.createJob)
		webhooks.POST("/jobUpdate", s.jobUpdate)
		webhooks.POST("/getActiveCompanies", s.getActiveCompanies)
		webhooks.POST("/uploadAttachments", s.uploadAttachments)
	}

	api := s.engine.Group("/api", identity(s.cfg.IdentityHeader, s.services.Users))
	{
		api.PUT("/profile/resume", s.uploadResume)
		api.POST("/:module/:function", s.callFunction)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run() error {
	log.Infof("http server listening on %v", s.cfg.Address)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.health != nil {
		if err := s.health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
