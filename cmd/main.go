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

	applyPromotionHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/apply_promotion"
	assignCustomerHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/assign_customer"
	assignPaymentHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/assign_payment"
	assignSlotHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/assign_slot"
	confirmBookingHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/create_booking"
	createContractorHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/create_contractor"
	createPricingRuleHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/create_pricing_rule"
	createServiceHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/create_service"
	findCandidatesHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/find_candidates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/get_booking"
	getContractorHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/get_contractor"
	manageCartHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/manage_cart"
	manageCoverageHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/manage_coverage"
	managePromotionsHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/manage_promotions"
	manageUnavailabilityHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/manage_unavailability"
	setContractorStatusHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/set_contractor_status"
	updateBookingStatusHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/update_booking_status"
	updateWorkingHoursHandler "github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-CleaningBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBookingService/internal/config"
	"github.com/m04kA/SMC-CleaningBookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/booking"
	contractorRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/contractor"
	pricingRuleRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/pricingrule"
	promotionRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/promotion"
	serviceRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-CleaningBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-CleaningBookingService/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-CleaningBookingService/internal/service/catalog"
	contractorsService "github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/reservations"
	applyPromotionUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/apply_promotion"
	assignPaymentUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/assign_payment"
	assignSlotUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/assign_slot"
	confirmBookingUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/confirm_booking"
	createBookingUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/get_available_slots"
	manageCartUC "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/manage_cart"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/types"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CLEANING_CONFIG"); p != "" {
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

	log.Info("Starting SMC-CleaningBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil, если выключены; методы nil-safe)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Все запросы идут через обёртку: транзакции передаются через контекст
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	contractorRepository := contractorRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)
	pricingRuleRepository := pricingRuleRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)

	// Движок доступности
	engine, err := availability.NewEngine(availability.Config{
		ScanStart: types.TimeString(cfg.Availability.ScanStart),
		ScanEnd:   types.TimeString(cfg.Availability.ScanEnd),
		ScanStep:  cfg.Availability.ScanStep(),
	})
	if err != nil {
		log.Fatal("Failed to initialize availability engine: %v", err)
	}

	// Redis блокировки слотов (опционально)
	var slotLocker assignSlotUC.SlotLocker
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(pingCtx)
		pingCancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisCache.Close()
		slotLocker = redisCache
		log.Info("Slot locks enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.SlotLockTTL())
	} else {
		log.Warn("Redis is not configured, slot locks disabled")
	}

	// Уведомления о подтверждении
	var confirmNotifier confirmBookingUC.Notifier
	if cfg.Kafka.Enabled() {
		kafkaNotifier := notifier.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.ConfirmedTopic, log)
		defer kafkaNotifier.Close()
		confirmNotifier = kafkaNotifier
		log.Info("Kafka notifier enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.ConfirmedTopic)
	} else {
		confirmNotifier = notifier.NewLogNotifier(log)
		log.Warn("Kafka is not configured, confirmations are only logged")
	}

	// Платежный провайдер
	paymentClient := paymentprovider.NewClient(
		cfg.PaymentProvider.URL,
		cfg.PaymentProvider.APIKey,
		time.Duration(cfg.PaymentProvider.Timeout)*time.Second,
		log,
	)
	log.Info("Payment provider client initialized (url=%s, timeout=%ds)",
		cfg.PaymentProvider.URL, cfg.PaymentProvider.Timeout)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		contractorRepository,
		txMgr,
		metricsCollector,
		log,
	)
	contractorSvc := contractorsService.NewService(contractorRepository, log)
	reservationReleaser := reservations.NewReleaser(contractorRepository, log)
	catalogSvc := catalogService.NewService(
		serviceRepository,
		promotionRepository,
		pricingRuleRepository,
		cfg.Booking.Currency,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(contractorRepository, engine, log)
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, cfg.Booking.Currency, log)
	manageCartUseCase := manageCartUC.NewUseCase(bookingRepository, serviceRepository, pricingRuleRepository, txMgr, log)
	assignSlotUseCase := assignSlotUC.NewUseCase(
		bookingRepository,
		contractorRepository,
		engine,
		slotLocker,
		cfg.Redis.SlotLockTTL(),
		txMgr,
		metricsCollector,
		log,
	)
	applyPromotionUseCase := applyPromotionUC.NewUseCase(
		bookingRepository,
		promotionRepository,
		txMgr,
		metricsCollector,
		log,
	)
	assignPaymentUseCase := assignPaymentUC.NewUseCase(
		bookingRepository,
		paymentClient,
		reservationReleaser,
		txMgr,
		metricsCollector,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		paymentClient,
		confirmNotifier,
		reservationReleaser,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	findCandidates := findCandidatesHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	assignCustomer := assignCustomerHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	manageCart := manageCartHandler.NewHandler(manageCartUseCase, log)
	assignSlot := assignSlotHandler.NewHandler(assignSlotUseCase, log)
	applyPromotion := applyPromotionHandler.NewHandler(applyPromotionUseCase, log)
	assignPayment := assignPaymentHandler.NewHandler(assignPaymentUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	createContractor := createContractorHandler.NewHandler(contractorSvc, log)
	getContractor := getContractorHandler.NewHandler(contractorSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(contractorSvc, log)
	manageUnavailability := manageUnavailabilityHandler.NewHandler(contractorSvc, log)
	manageCoverage := manageCoverageHandler.NewHandler(contractorSvc, log)
	setContractorStatus := setContractorStatusHandler.NewHandler(contractorSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	managePromotions := managePromotionsHandler.NewHandler(catalogSvc, log)
	createPricingRule := createPricingRuleHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты по почтовому индексу и дате
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Подрядчики, обслуживающие индекс
	api.HandleFunc("/candidates", findCandidates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/customer", assignCustomer.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/items", manageCart.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/items/{serviceId}", manageCart.HandleRemove).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/slot", assignSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/promotion", applyPromotion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payment", assignPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// --- Подрядчики ---
	protected.HandleFunc("/contractors", createContractor.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/contractors/{contractorId}", getContractor.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/contractors/{contractorId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/contractors/{contractorId}/unavailability", manageUnavailability.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/contractors/{contractorId}/unavailability", manageUnavailability.HandleRemove).Methods(http.MethodDelete)
	protected.HandleFunc("/contractors/{contractorId}/coverage", manageCoverage.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/contractors/{contractorId}/coverage", manageCoverage.HandleRemove).Methods(http.MethodDelete)
	protected.HandleFunc("/contractors/{contractorId}/status", setContractorStatus.Handle).Methods(http.MethodPatch)

	// --- Справочники ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/promotions", managePromotions.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/promotions/{code}", managePromotions.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/pricing-rules", createPricingRule.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики пула соединений
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
