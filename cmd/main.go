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

	adminCancelBookingHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/admin_cancel_booking"
	adminLoginHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/admin_login"
	cancelBookingHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/confirm_booking"
	createFacilityHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/create_facility"
	createResidentHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/create_resident"
	deleteResidentHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/delete_resident"
	generateSlotsHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/generate_slots"
	getAdminBookingsHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/get_booking"
	getFacilitiesHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/get_facilities"
	getResidentBookingsHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/get_resident_bookings"
	listResidentsHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/list_residents"
	residentActivateHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/resident_activate"
	residentLoginHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/resident_login"
	setFacilityAvailabilityHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/set_facility_availability"
	setupTwoFactorHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/setup_two_factor"
	updateResidentHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/update_resident"
	verifyTwoFactorHandler "github.com/m04kA/TSZH-FacilityService/internal/api/handlers/verify_two_factor"
	"github.com/m04kA/TSZH-FacilityService/internal/api/middleware"
	"github.com/m04kA/TSZH-FacilityService/internal/config"
	adminRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/admin"
	bookingRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/booking"
	emailLogRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/emaillog"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	residentRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/resident"
	timeslotRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/timeslot"
	twoFactorRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/twofactor"
	mailServiceClient "github.com/m04kA/TSZH-FacilityService/internal/integrations/mailservice"
	adminsService "github.com/m04kA/TSZH-FacilityService/internal/service/admins"
	bookingsService "github.com/m04kA/TSZH-FacilityService/internal/service/bookings"
	facilitiesService "github.com/m04kA/TSZH-FacilityService/internal/service/facilities"
	notificationsService "github.com/m04kA/TSZH-FacilityService/internal/service/notifications"
	residentsService "github.com/m04kA/TSZH-FacilityService/internal/service/residents"
	twoFactorService "github.com/m04kA/TSZH-FacilityService/internal/service/twofactor"
	confirmBookingUC "github.com/m04kA/TSZH-FacilityService/internal/usecase/confirm_booking"
	generateSlotsUC "github.com/m04kA/TSZH-FacilityService/internal/usecase/generate_slots"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/logger"
	"github.com/m04kA/TSZH-FacilityService/pkg/metrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/TSZH-FacilityService/pkg/txmanager"
)

// evictInterval период очистки просроченных 2FA-кодов
const evictInterval = 10 * time.Minute

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

	log.Info("Starting TSZH-FacilityService...")
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

	// Инициализируем JWT-менеджер
	tokenManager := auth.NewManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	// Инициализируем клиент почтового шлюза
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Mail service client initialized (url=%s timeout=%ds)",
		cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		facilityRepository  *facilityRepo.Repository
		timeslotRepository  *timeslotRepo.Repository
		bookingRepository   *bookingRepo.Repository
		residentRepository  *residentRepo.Repository
		adminRepository     *adminRepo.Repository
		twoFactorRepository *twoFactorRepo.Repository
		emailLogRepository  *emailLogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		timeslotRepository = timeslotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		residentRepository = residentRepo.NewRepository(wrappedDB)
		adminRepository = adminRepo.NewRepository(wrappedDB)
		twoFactorRepository = twoFactorRepo.NewRepository(wrappedDB)
		emailLogRepository = emailLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		facilityRepository = facilityRepo.NewRepository(db)
		timeslotRepository = timeslotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		residentRepository = residentRepo.NewRepository(db)
		adminRepository = adminRepo.NewRepository(db)
		twoFactorRepository = twoFactorRepo.NewRepository(db)
		emailLogRepository = emailLogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(mailClient, emailLogRepository, log)
	facilitySvc := facilitiesService.NewService(facilityRepository, log)
	twoFactorSvc := twoFactorService.NewService(twoFactorRepository, notificationSvc, log)
	residentSvc := residentsService.NewService(residentRepository, notificationSvc, tokenManager, log)
	adminSvc := adminsService.NewService(adminRepository, twoFactorSvc, tokenManager, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		timeslotRepository,
		facilityRepository,
		residentRepository,
		notificationSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		timeslotRepository,
		facilityRepository,
		txMgr,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		timeslotRepository,
		bookingRepository,
		residentRepository,
		facilityRepository,
		notificationSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	residentLogin := residentLoginHandler.NewHandler(residentSvc, log)
	residentActivate := residentActivateHandler.NewHandler(residentSvc, log)
	adminLogin := adminLoginHandler.NewHandler(adminSvc, log)
	verifyTwoFactor := verifyTwoFactorHandler.NewHandler(adminSvc, log)
	setupTwoFactor := setupTwoFactorHandler.NewHandler(adminSvc, log)
	getFacilities := getFacilitiesHandler.NewHandler(facilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getResidentBookings := getResidentBookingsHandler.NewHandler(bookingSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := adminCancelBookingHandler.NewHandler(bookingSvc, log)
	createFacility := createFacilityHandler.NewHandler(facilitySvc, log)
	setFacilityAvailability := setFacilityAvailabilityHandler.NewHandler(facilitySvc, log)
	createResident := createResidentHandler.NewHandler(residentSvc, log)
	listResidents := listResidentsHandler.NewHandler(residentSvc, log)
	updateResident := updateResidentHandler.NewHandler(residentSvc, log)
	deleteResident := deleteResidentHandler.NewHandler(residentSvc, log)

	// Фоновая очистка просроченных 2FA-кодов
	stopEvictCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(evictInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				twoFactorSvc.EvictExpired(context.Background())
			case <-stopEvictCh:
				return
			}
		}
	}()

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

	// Аутентификация жителей
	api.HandleFunc("/auth/resident/login", residentLogin.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/resident/activate", residentActivate.Handle).Methods(http.MethodPost)

	// Аутентификация администраторов
	api.HandleFunc("/auth/admin/login", adminLogin.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/admin/2fa/verify", verifyTwoFactor.Handle).Methods(http.MethodPost)

	// Каталог объектов и расписание слотов
	api.HandleFunc("/facilities", getFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT жителя или администратора)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenManager, log))

	// --- Бронирования ---
	// Бронирование слота
	protected.HandleFunc("/bookings", confirmBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования жителем (действует окно 24 часа)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// Предстоящие бронирования жителя
	protected.HandleFunc("/residents/{residentId}/bookings", getResidentBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют JWT с ролью admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(log))

	// --- Объекты ---
	admin.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/facilities/{facilityId}/availability", setFacilityAvailability.Handle).Methods(http.MethodPut)

	// Генерация слотов на дату
	admin.HandleFunc("/facilities/{facilityId}/slots", generateSlots.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", adminCancelBooking.Handle).Methods(http.MethodDelete)

	// --- Жители ---
	admin.HandleFunc("/residents", createResident.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/residents", listResidents.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/residents/{residentId}", updateResident.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/residents/{residentId}", deleteResident.Handle).Methods(http.MethodDelete)

	// --- 2FA ---
	admin.HandleFunc("/2fa/setup", setupTwoFactor.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновые задачи
	close(stopEvictCh)

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
