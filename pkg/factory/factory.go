package factory

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ordones18/Ponte-Once-Store/internal/config"
	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/internal/notification"
	"github.com/Ordones18/Ponte-Once-Store/internal/repository"
	"github.com/Ordones18/Ponte-Once-Store/internal/service"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetMailDispatcher() *notification.Dispatcher

	GetUserRepository() domain.UserRepository
	GetProductRepository() domain.ProductRepository
	GetPurchaseRepository() domain.PurchaseRepository

	GetAuthService() domain.AuthService
	GetCatalogService() domain.CatalogService
	GetCheckoutService() domain.CheckoutService
	GetAnalyticsService() domain.AnalyticsService
}

type AppFactory struct {
	config     *config.Config
	logger     logger.Logger
	db         *sql.DB
	mailClient *notification.Client
	mailer     *notification.Mailer
	dispatcher *notification.Dispatcher

	userRepository     domain.UserRepository
	productRepository  domain.ProductRepository
	purchaseRepository domain.PurchaseRepository

	authService      domain.AuthService
	catalogService   domain.CatalogService
	checkoutService  domain.CheckoutService
	analyticsService domain.AnalyticsService
}

func NewFactory() (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), nil)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", cfg.Database.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows one writer at a time; a single pooled connection keeps
	// checkout transactions from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	f := &AppFactory{
		config: cfg,
		logger: log,
		db:     db,
	}

	f.initNotification()
	f.initRepositories()
	f.initServices()

	return f, nil
}

func (f *AppFactory) initNotification() {
	f.mailClient = notification.NewClient(f.config.Mail.ServiceURL, f.config.Mail.Timeout, f.logger)
	f.mailer = notification.NewMailer(f.config.Mail.PublicBaseURL)
	f.dispatcher = notification.NewDispatcher(f.config.Mail.Workers, f.config.Mail.QueueSize, f.mailClient, f.logger)
}

func (f *AppFactory) initRepositories() {
	f.userRepository = repository.NewUserRepository(f.db, f.logger)
	f.productRepository = repository.NewProductRepository(f.db, f.logger)
	f.purchaseRepository = repository.NewPurchaseRepository(f.db, f.logger)
}

func (f *AppFactory) initServices() {
	f.authService = service.NewAuthService(f.userRepository, f.dispatcher, f.mailer, f.config.Auth, f.logger)
	f.catalogService = service.NewCatalogService(f.productRepository, f.logger)
	f.checkoutService = service.NewCheckoutService(f.purchaseRepository, f.productRepository, f.dispatcher, f.mailer, f.logger)
	f.analyticsService = service.NewAnalyticsService(f.purchaseRepository, f.productRepository, f.userRepository, f.logger)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetMailDispatcher() *notification.Dispatcher {
	return f.dispatcher
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetProductRepository() domain.ProductRepository {
	return f.productRepository
}

func (f *AppFactory) GetPurchaseRepository() domain.PurchaseRepository {
	return f.purchaseRepository
}

func (f *AppFactory) GetAuthService() domain.AuthService {
	return f.authService
}

func (f *AppFactory) GetCatalogService() domain.CatalogService {
	return f.catalogService
}

func (f *AppFactory) GetCheckoutService() domain.CheckoutService {
	return f.checkoutService
}

func (f *AppFactory) GetAnalyticsService() domain.AnalyticsService {
	return f.analyticsService
}
