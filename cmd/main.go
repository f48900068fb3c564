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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/accept_booking"
	cancelBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/cancel_booking"
	copyScheduleHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/copy_schedule"
	createBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/decline_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_booking"
	getOwnerBookingsHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_owner_bookings"
	getProfileHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_profile"
	rescheduleBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/reschedule_booking"
	updateAvailabilityHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/update_availability"
	updateProfileHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/update_profile"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	notifierClient "github.com/m04kA/SMC-MeetingService/internal/integrations/notifier"
	availabilityService "github.com/m04kA/SMC-MeetingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	acceptBookingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/accept_booking"
	copyScheduleUC "github.com/m04kA/SMC-MeetingService/internal/usecase/copy_schedule"
	createBookingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/logger"
	"github.com/m04kA/SMC-MeetingService/pkg/metrics"
	"github.com/m04kA/SMC-MeetingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-MeetingService/pkg/txmanager"
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

	log.Info("Starting SMC-MeetingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем клиента диспетчера уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	if cfg.Metrics.Enabled {
		notifier = notifier.WithMetrics(metricsCollector)
	}
	log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		profileRepository      *profileRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		profileRepository = profileRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		profileRepository = profileRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		profileRepository,
		notifier,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		bookingRepository,
		profileRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		profileRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		profileRepository,
		notifier,
		txMgr,
		log,
	)
	acceptBookingUseCase := acceptBookingUC.NewUseCase(
		bookingRepository,
		profileRepository,
		notifier,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		profileRepository,
		notifier,
		txMgr,
		log,
	)
	copyScheduleUseCase := copyScheduleUC.NewUseCase(
		availabilityRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	acceptBooking := acceptBookingHandler.NewHandler(acceptBookingUseCase, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	copySchedule := copyScheduleHandler.NewHandler(copyScheduleUseCase, log)
	getProfile := getProfileHandler.NewHandler(availabilitySvc, log)
	updateProfile := updateProfileHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты владельца на дату
	api.HandleFunc("/owners/{ownerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание заявки на встречу
	api.HandleFunc("/owners/{ownerId}/bookings",
		createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение заявки
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPatch)

	// Отклонение заявки
	protected.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)

	// Отмена подтверждённого бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос подтверждённого бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Список бронирований владельца
	protected.HandleFunc("/owners/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

	// --- Расписание и профиль владельца ---
	// Настройка дня
	protected.HandleFunc("/owners/{ownerId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{ownerId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// Заполнение пустых дней по образцу прошлой недели
	protected.HandleFunc("/owners/{ownerId}/availability/copy-forward", copySchedule.Handle).Methods(http.MethodPost)

	// Профиль владельца (буфер, предлагаемые длительности)
	protected.HandleFunc("/owners/{ownerId}/profile", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{ownerId}/profile", updateProfile.Handle).Methods(http.MethodPut)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
