package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/joho/godotenv"
	"github.com/maxaizer/placement-portal/internal/api"
	"github.com/maxaizer/placement-portal/internal/cache"
	"github.com/maxaizer/placement-portal/internal/clients/gemini"
	"github.com/maxaizer/placement-portal/internal/clients/langchain"
	"github.com/maxaizer/placement-portal/internal/clients/vertex"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/maxaizer/placement-portal/internal/logger"
	"github.com/maxaizer/placement-portal/internal/metrics"
	"github.com/maxaizer/placement-portal/internal/repositories"
	"github.com/maxaizer/placement-portal/internal/resume"
	"github.com/maxaizer/placement-portal/internal/services"
	"github.com/maxaizer/placement-portal/internal/storage"
	"github.com/maxaizer/placement-portal/internal/telegram"
	log "github.com/sirupsen/logrus"
)

type generator interface {
	GenerateResponse(ctx context.Context, text string) (string, error)
	SetMinuteRateLimit(maxRequestsPerMinute float32)
	SetDayRateLimit(maxRequestsPerDay float32)
	Close() error
}

func newGenerator(ctx context.Context, cfg config.AIConfig) (generator, error) {
	var (
		client generator
		err    error
	)

	switch cfg.Provider {
	case config.ProviderGemini:
		client, err = gemini.NewClient(ctx, cfg.Key, gemini.Model(cfg.Model))
	case config.ProviderVertex:
		client, err = vertex.NewClient(ctx, cfg.ProjectID, cfg.Region, cfg.Model)
	case config.ProviderLangchain:
		client, err = langchain.NewClient(ctx, cfg.Key, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
	client.SetDayRateLimit(cfg.MaxRequestsPerDay)
	return client, nil
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Address)

	dbContext, err := repositories.NewDbContext(cfg.DB)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	companiesCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatalf("can't create cache: %v", err)
	}
	defer companiesCache.Close()

	users := repositories.NewUsersRepository(dbContext.DB)
	profiles := repositories.NewProfilesRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	notifications := repositories.NewNotificationsRepository(dbContext.DB)
	mails := repositories.NewMailsRepository(dbContext.DB)
	jobUpdates := repositories.NewJobUpdatesRepository(dbContext.DB)
	companies := repositories.NewCachedCompanies(jobs, companiesCache, cfg.Cache.CompaniesTTL)

	bus := EventBus.New()

	if _, err = services.NewNotificationFanout(bus, notifications, users, profiles, applications); err != nil {
		log.Fatalf("can't subscribe notification fan-out: %v", err)
	}
	if err = services.SubscribeCompaniesInvalidation(bus, companies); err != nil {
		log.Fatalf("can't subscribe companies invalidation: %v", err)
	}

	if cfg.Telegram.Enabled() {
		if _, err = telegram.NewAnnouncer(cfg.Telegram.Token, cfg.Telegram.ChannelID, cfg.Telegram.PortalURL, bus); err != nil {
			log.Fatalf("can't create telegram announcer: %v", err)
		}
	}

	aiClient, err := newGenerator(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	defer aiClient.Close()

	resumeStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("can't create resume storage: %v", err)
	}
	defer resumeStore.Close()

	analyzer := resume.NewAnalyzer(cfg.Resume, aiClient)

	maintenance, err := services.NewMaintenance(jobs, notifications, companies,
		cfg.Maintenance.Schedule, cfg.Maintenance.NotificationRetentionDays)
	if err != nil {
		log.Fatalf("can't create maintenance: %v", err)
	}
	maintenance.Start()
	defer maintenance.Stop()

	server := api.NewServer(cfg.Server, api.Services{
		Jobs:          services.NewJobsService(bus, jobs, mails, applications, companies, profiles),
		Applications:  services.NewApplicationsService(bus, applications, jobs, profiles),
		Users:         services.NewUsersService(users, profiles, cfg.Server.BootstrapAdmins),
		Notifications: services.NewNotificationsService(notifications, profiles),
		Mails:         services.NewMailsService(mails, profiles),
		JobUpdates:    services.NewJobUpdatesService(bus, jobUpdates, jobs, profiles),
		Resumes:       services.NewResumesService(profiles, resumeStore, analyzer, storage.NewResumeKey, cfg.Resume.MaxSizeMB),
	}, dbContext.Ping)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	bus.WaitAsync()
	log.Info("Services stopped.")
}
