package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/create_booking"
	createBreakHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/create_break"
	createCorporateBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/create_corporate_booking"
	deleteBreakHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/delete_break"
	getAvailableSlotsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_booking"
	getSettingsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/list_bookings"
	listBreaksHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/list_breaks"
	updateBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/update_booking"
	updateBreakHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/update_break"
	updateSettingsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/update_settings"
	"github.com/m04kA/barbershop-booking/internal/api/middleware"
	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/config"
	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/internal/infra/cache/slots"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	breakRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/breaks"
	catalogRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/catalog"
	corporateRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/corporate"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/migrations"
	settingsRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/internal/integrations/eventstream"
	"github.com/m04kA/barbershop-booking/internal/integrations/mailer"
	bookingsService "github.com/m04kA/barbershop-booking/internal/service/bookings"
	breaksService "github.com/m04kA/barbershop-booking/internal/service/breaks"
	settingsService "github.com/m04kA/barbershop-booking/internal/service/settings"
	createBookingUC "github.com/m04kA/barbershop-booking/internal/usecase/create_booking"
	createCorporateBookingUC "github.com/m04kA/barbershop-booking/internal/usecase/create_corporate_booking"
	getAvailableSlotsUC "github.com/m04kA/barbershop-booking/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/barbershop-booking/internal/usecase/update_booking"
	"github.com/m04kA/barbershop-booking/internal/worker/reminders"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
	"github.com/m04kA/barbershop-booking/pkg/sqlbuilder"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("BOOKING_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting barbershop-booking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	rawDB, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}

	// Настраиваем connection pool
	rawDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	rawDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	rawDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	db := dbmetrics.Wrap(rawDB, dbRecorder)
	defer db.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s)", cfg.Database.Driver)

	if cfg.Database.Migrate {
		if err := migrations.Apply(startupCtx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database schema is up to date")
	}

	dialect, err := sqlbuilder.ForDriver(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Failed to select SQL dialect: %v", err)
	}

	if cfg.Metrics.Enabled {
		go db.CollectPoolStats(time.Duration(cfg.Metrics.PoolStatsInterval)*time.Second, stopMetricsCh)
		log.Info("Database pool metrics collection started")
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(db, dialect)
	breakRepository := breakRepo.NewRepository(db, dialect)
	catalogRepository := catalogRepo.NewRepository(db, dialect)
	corporateRepository := corporateRepo.NewRepository(db, dialect)
	settingsRepository := settingsRepo.NewRepository(db, dialect)
	staffRepository := staffRepo.NewRepository(db, dialect)

	txManager := txmanager.NewTransactionManager(db)

	// Кэш слотов: Redis, если включен, иначе память процесса
	var slotCache slots.Cache
	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	if cfg.Redis.Enabled {
		redisClient := slots.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		defer redisClient.Close()

		if err := slots.Ping(startupCtx, redisClient); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Address, err)
		}
		slotCache = slots.NewRedisCache(redisClient, cacheTTL)
		log.Info("Slot cache backed by redis at %s (ttl=%s)", cfg.Redis.Address, cacheTTL)
	} else {
		slotCache = slots.NewMemoryCache(cacheTTL)
		log.Info("Slot cache kept in memory (ttl=%s)", cacheTTL)
	}

	// Шина событий и подписчики
	bus := events.NewBus(log)
	bus.SubscribeAll("slot-cache", slots.InvalidationHandler(slotCache, log))

	if cfg.Mailer.Enabled {
		mailClient := mailer.NewClient(cfg.Mailer.URL, cfg.Mailer.APIKey, time.Duration(cfg.Mailer.Timeout)*time.Second, log)
		bus.SubscribeAll("mailer", mailClient.Handler())
		log.Info("Mailer notifications enabled (url=%s timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)
	}

	var streamPublisher *eventstream.Publisher
	if cfg.Kafka.Enabled {
		streamPublisher, err = eventstream.NewPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.BatchTimeoutMs)*time.Millisecond,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create kafka publisher: %v", err)
		}
		bus.SubscribeAll("eventstream", streamPublisher.Handler())
		log.Info("Booking events streamed to kafka topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	// Сервисы
	ledger := bookingsService.NewService(bookingRepository, txManager, bus, metricsCollector, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	breaksSvc := breaksService.NewService(breakRepository, staffRepository, slotCache, log)

	// Use cases
	location := cfg.Location()
	calculator := availability.NewCalculator(cfg.Booking.SlotGranularityMinutes)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		staffRepository,
		catalogRepository,
		bookingRepository,
		breakRepository,
		settingsSvc,
		slotCache,
		metricsCollector,
		calculator,
		location,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		staffRepository,
		catalogRepository,
		bookingRepository,
		breakRepository,
		settingsSvc,
		ledger,
		calculator,
		location,
		log,
	)
	createCorporateBookingUseCase := createCorporateBookingUC.NewUseCase(
		staffRepository,
		catalogRepository,
		bookingRepository,
		breakRepository,
		corporateRepository,
		settingsSvc,
		ledger,
		txManager,
		calculator,
		location,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		staffRepository,
		bookingRepository,
		breakRepository,
		settingsSvc,
		ledger,
		txManager,
		calculator,
		location,
		log,
	)

	// Напоминания
	var reminderWorker *reminders.Worker
	if cfg.Reminders.Enabled {
		reminderWorker, err = reminders.NewWorker(cfg.Reminders.Schedule, ledger, bus, location, log)
		if err != nil {
			log.Fatal("Failed to create reminders worker: %v", err)
		}
		reminderWorker.Start()
		log.Info("Reminders scheduled at %q (%s)", cfg.Reminders.Schedule, location)
	}

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createCorporateBooking := createCorporateBookingHandler.NewHandler(createCorporateBookingUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getBooking := getBookingHandler.NewHandler(ledger, corporateRepository, log)
	listBookings := listBookingsHandler.NewHandler(ledger, log)
	confirmBooking := confirmBookingHandler.NewHandler(ledger, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(ledger, log)
	createBreak := createBreakHandler.NewHandler(breaksSvc, log)
	listBreaks := listBreaksHandler.NewHandler(breaksSvc, log)
	updateBreak := updateBreakHandler.NewHandler(breaksSvc, log)
	deleteBreak := deleteBreakHandler.NewHandler(breaksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/staff/{staffId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	createBookingRoute := http.Handler(http.HandlerFunc(createBooking.Handle))
	createCorporateRoute := http.Handler(http.HandlerFunc(createCorporateBooking.Handle))
	stopLimiterCh := make(chan struct{})
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTimeout)*time.Second,
			cfg.RateLimit.TrustedProxies,
		)
		if err != nil {
			log.Fatal("Failed to configure rate limit: %v", err)
		}
		go limiter.EvictIdle(time.Minute, stopLimiterCh)
		createBookingRoute = limiter.Middleware(createBookingRoute)
		createCorporateRoute = limiter.Middleware(createCorporateRoute)
		log.Info("Booking rate limit enabled (rps=%.2f burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)
	api.Handle("/corporate-bookings", createCorporateRoute).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Key)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminKey(cfg.Server.AdminAPIKey))
	if cfg.Server.AdminAPIKey == "" {
		log.Warn("Admin API key is empty, admin routes are not guarded")
	}

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPut)

	// --- Перерывы мастеров ---
	admin.HandleFunc("/staff-breaks", createBreak.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/staff-breaks", listBreaks.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/staff-breaks/{breakId}", updateBreak.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/staff-breaks/{breakId}", deleteBreak.Handle).Methods(http.MethodDelete)

	// --- Настройки ---
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if reminderWorker != nil {
		if err := reminderWorker.Stop(shutdownCtx); err != nil {
			log.Error("Reminders worker did not stop in time: %v", err)
		}
	}

	if streamPublisher != nil {
		if err := streamPublisher.Close(); err != nil {
			log.Error("Failed to flush kafka publisher: %v", err)
		}
	}

	close(stopLimiterCh)

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
