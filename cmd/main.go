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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	createTimeBlockHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_time_block"
	deleteTimeBlockHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_time_block"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_bookings"
	getNextAvailableSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_next_available_slot"
	listTimeBlocksHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_time_blocks"
	rescheduleBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/slots"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	timeBlockRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/timeblock"
	businessServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/businessservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	timeBlocksService "github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	getNextAvailableSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available_slot"
	rescheduleBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil *Metrics безопасен для всех вызовов.
	var (
		metricsCollector *metrics.Metrics
		registry         *prometheus.Registry
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, registry)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Metrics.Enabled {
		dbmetrics.StartPoolCollector(db, metricsCollector, dbmetrics.DefaultCollectInterval, stopMetricsCh)
		log.Info("Database pool metrics collection started")
	}

	// Кеш слотов: Redis или no-op
	var slotCache slots.Store = slots.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, slot cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			slotCache = slots.NewCache(redisClient, cfg.Availability.CacheTTL(), metricsCollector)
			log.Info("Slot cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Availability.CacheTTL())
		}
		cancelPing()
	}

	// Интеграция с сервисом бизнесов
	businessClient := businessServiceClient.NewClient(
		cfg.BusinessService.URL,
		time.Duration(cfg.BusinessService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (BusinessService=%s timeout=%ds)",
		cfg.BusinessService.URL, cfg.BusinessService.Timeout)

	// Движок доступности
	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Availability.Timezone, err)
	}
	engine := availability.NewEngine(availability.Config{
		SlotStepMinutes: cfg.Availability.SlotStepMinutes,
		BufferMinutes:   cfg.Availability.BufferMinutes,
		SearchDays:      cfg.Availability.SearchDays,
		Location:        location,
	}, &availability.RealTimeProvider{})
	log.Info("Availability engine configured (step=%dm, buffer=%dm, search_days=%d, timezone=%s)",
		cfg.Availability.SlotStepMinutes, cfg.Availability.BufferMinutes, cfg.Availability.SearchDays, location)

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(db)
	timeBlockRepository := timeBlockRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(businessClient, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotCache, metricsCollector, log)
	timeBlockSvc := timeBlocksService.NewService(timeBlockRepository, catalogSvc, slotCache, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogSvc,
		bookingRepository,
		timeBlockRepository,
		engine,
		slotCache,
		metricsCollector,
		log,
	)

	getNextAvailableSlotUseCase := getNextAvailableSlotUC.NewUseCase(
		catalogSvc,
		bookingRepository,
		timeBlockRepository,
		engine,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		catalogSvc,
		bookingRepository,
		timeBlockRepository,
		engine,
		txMgr,
		slotCache,
		metricsCollector,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		timeBlockRepository,
		catalogSvc,
		engine,
		txMgr,
		slotCache,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getNextAvailableSlot := getNextAvailableSlotHandler.NewHandler(getNextAvailableSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	createTimeBlock := createTimeBlockHandler.NewHandler(timeBlockSvc, log)
	listTimeBlocks := listTimeBlocksHandler.NewHandler(timeBlockSvc, log)
	deleteTimeBlock := deleteTimeBlockHandler.NewHandler(timeBlockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(log))

	// --- Доступность ---
	// Слоты сотрудника на дату
	api.HandleFunc("/businesses/{businessId}/providers/{providerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайший свободный слот
	api.HandleFunc("/businesses/{businessId}/providers/{providerId}/next-available-slot",
		getNextAvailableSlot.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Управление бизнесом ---
	// Список бронирований бизнеса
	api.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Блокировки времени
	api.HandleFunc("/businesses/{businessId}/time-blocks", createTimeBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/businesses/{businessId}/time-blocks", listTimeBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/time-blocks/{blockId}", deleteTimeBlock.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
