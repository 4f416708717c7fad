package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/config"
	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	redisCache "github.com/ds124wfegd/hotel-backoffice/internal/database/redis"
	"github.com/ds124wfegd/hotel-backoffice/internal/service"
	"github.com/ds124wfegd/hotel-backoffice/internal/transport"
	"github.com/ds124wfegd/hotel-backoffice/internal/worker"

	"github.com/ds124wfegd/hotel-backoffice/pkg/postgres"
	"github.com/ds124wfegd/hotel-backoffice/pkg/queue"
	"github.com/ds124wfegd/hotel-backoffice/pkg/redis"
	"github.com/ds124wfegd/hotel-backoffice/pkg/scheduler"
	"github.com/ds124wfegd/hotel-backoffice/pkg/storage"
	"github.com/ds124wfegd/hotel-backoffice/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// initQueue подключает очередь уведомлений. При недоступном redis возвращает
// nil-интерфейсы, и сервис продолжает работать без очереди: конкретный тип
// в интерфейс попадает только после успешной инициализации
func initQueue(cfg *queue.RedisQueueConfig, retryManager *queue.RetryManager, dlqHandler queue.DLQHandler) (queue.Queue, service.TaskPublisher) {
	rq, err := queue.NewRedisQueue(cfg, retryManager, dlqHandler)
	if err != nil {
		logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
		return nil, nil
	}

	logrus.Info("Redis queue initialized")
	return rq, service.NewQueueAdapter(rq)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	seasonalRepo := repository.NewSeasonalPriceRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)

	// Initialize Telegram bot
	var telegramBot *telegram.Bot
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		logrus.Info("Telegram bot initialized")
	} else {
		logrus.Warn("Telegram bot token not provided, notifications disabled")
	}

	// Initialize redis client, cache and queue
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	cache := redisCache.NewCacheRepository(redisClient, cfg.Cache.TTL)

	queueConfig := queue.DefaultRedisQueueConfig()
	queueConfig.Addr = cfg.Redis.URL
	queueConfig.Password = cfg.Redis.Password
	queueConfig.DB = cfg.Redis.DB

	retryManager := queue.NewRetryManager(3, 5*time.Second)
	dlqHandler := queue.NewDefaultDLQHandler(redisClient, queueConfig.DLQ)

	redisQueue, taskPublisher := initQueue(queueConfig, retryManager, dlqHandler)

	// Initialize file storage for agreements
	fileStorage := storage.NewFileStorage(cfg.Upload.BasePath)

	// Initialize services
	rateService := service.NewRateService(roomRepo, seasonalRepo)
	availabilityService := service.NewAvailabilityService(availabilityRepo, roomRepo)
	hotelService := service.NewHotelService(hotelRepo, bookingRepo, cache)
	roomService := service.NewRoomService(roomRepo, hotelRepo, seasonalRepo, cache)
	guestService := service.NewGuestService(guestRepo)
	bookingService := service.NewBookingService(
		bookingRepo, roomRepo, hotelRepo, guestRepo,
		rateService, taskPublisher, telegramBot, cache, cfg.Booking,
	)
	paymentService := service.NewPaymentService(paymentRepo, bookingRepo, taskPublisher)
	agreementService := service.NewAgreementService(agreementRepo, bookingRepo, fileStorage, cfg.Upload)

	// Start queue consumer if queue is available
	if redisQueue != nil {
		taskHandler := queue.NewTaskHandler(telegramBot)

		go func() {
			ctx := context.Background()
			if err := redisQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
				logrus.Errorf("Queue subscriber error: %v", err)
			}
		}()
		logrus.Info("Queue subscriber started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize and start expiry scheduler
	expiryScheduler := scheduler.NewScheduler(bookingService, time.Duration(cfg.Worker.ExpiryInterval)*time.Minute)
	go expiryScheduler.Start(ctx)
	logrus.Info("Expiry scheduler started")

	// Initialize availability seed worker
	seedWorker := worker.NewAvailabilitySeedWorker(
		roomRepo, availabilityRepo,
		cfg.Worker.SeedWindowDays,
		time.Duration(cfg.Worker.SeedInterval)*time.Minute,
	)
	go seedWorker.Start(ctx)
	logrus.Info("Availability seed worker started")

	// Initialize handlers
	handlers := &transport.Handlers{
		Hotel:        transport.NewHotelHandler(hotelService),
		Room:         transport.NewRoomHandler(roomService),
		Guest:        transport.NewGuestHandler(guestService),
		Booking:      transport.NewBookingHandler(bookingService),
		Payment:      transport.NewPaymentHandler(paymentService),
		Agreement:    transport.NewAgreementHandler(agreementService),
		Availability: transport.NewAvailabilityHandler(availabilityService),
	}

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handlers)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if redisQueue != nil {
		if err := redisQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue shutting down: %s", err.Error())
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
