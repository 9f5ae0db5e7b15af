package di

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"taskhub/application/serviceimpl"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/infrastructure/memory"
	"taskhub/infrastructure/messaging"
	"taskhub/infrastructure/mongodb"
	natspkg "taskhub/infrastructure/nats"
	"taskhub/infrastructure/postgres"
	redispkg "taskhub/infrastructure/redis"
	"taskhub/infrastructure/websocket"
	"taskhub/interfaces/api/handlers"
	"taskhub/pkg/config"
	"taskhub/pkg/logger"
	"taskhub/pkg/scheduler"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB      // postgres driver
	MongoClient    *mongo.Client // mongo driver
	MemoryStore    *memory.Store // memory driver
	RedisClient    *redispkg.Client
	NATSClient     *natspkg.Client
	NATSSubscriber *natspkg.Subscriber
	EventScheduler scheduler.EventScheduler

	// Live push
	Hub                     *websocket.Hub
	NotificationBroadcaster *websocket.NotificationBroadcaster
	stopHub                 context.CancelFunc

	// Ports
	Transactor            ports.Transactor
	TokenBlacklist        ports.TokenBlacklistPort
	NotificationPublisher ports.NotificationPublisherPort

	// Repositories
	UserRepository         repositories.UserRepository
	TaskRepository         repositories.TaskRepository
	NotificationRepository repositories.NotificationRepository

	// Services
	UserService                services.UserService
	TaskService                services.TaskService
	NotificationService        services.NotificationService
	NotificationCleanupService *serviceimpl.NotificationCleanupService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	c.initNotificationPush()

	if err := c.initServices(); err != nil {
		return err
	}

	return c.initScheduler()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
		"file", c.Config.Log.FilePath,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	switch c.Config.Database.Driver {
	case DriverPostgres:
		if err := c.initPostgres(); err != nil {
			return err
		}
	case DriverMongo:
		if err := c.initMongo(); err != nil {
			return err
		}
	case DriverMemory:
		c.MemoryStore = memory.NewStore()
		logger.Warn("Using in-memory store, data is lost on restart")
	default:
		return fmt.Errorf("unknown database driver %q", c.Config.Database.Driver)
	}

	// Redis is optional: without it revoked tokens live in process memory.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed, using in-memory token blacklist", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	// NATS is optional: without it notifications are pushed to this instance's sockets only.
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:  c.Config.NATS.URL,
			Name: c.Config.App.Name,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed, using in-process push", "error", err)
		} else {
			c.NATSClient = natsClient
			logger.Info("NATS client initialized", "url", c.Config.NATS.URL)
		}
	}

	return nil
}

func (c *Container) initPostgres() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogSQL:   c.Config.Log.Level == "debug",
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")
	return nil
}

func (c *Container) initMongo() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, &c.Config.Mongo)
	if err != nil {
		return err
	}
	c.MongoClient = client

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	c.UserRepository = mongodb.NewUserRepository(db)
	c.TaskRepository = mongodb.NewTaskRepository(db)
	c.NotificationRepository = mongodb.NewNotificationRepository(db)
	c.Transactor = mongodb.NewTransactor(client)
	return nil
}

func (c *Container) initRepositories() error {
	switch {
	case c.DB != nil:
		c.UserRepository = postgres.NewUserRepository(c.DB)
		c.TaskRepository = postgres.NewTaskRepository(c.DB)
		c.NotificationRepository = postgres.NewNotificationRepository(c.DB)
		c.Transactor = postgres.NewTransactor(c.DB)
	case c.MongoClient != nil:
		// wired in initMongo, which holds the database handle
	case c.MemoryStore != nil:
		c.UserRepository = memory.NewUserRepository(c.MemoryStore)
		c.TaskRepository = memory.NewTaskRepository(c.MemoryStore)
		c.NotificationRepository = memory.NewNotificationRepository(c.MemoryStore)
		c.Transactor = memory.NewTransactor(c.MemoryStore)
	default:
		return fmt.Errorf("no store initialized")
	}

	if c.RedisClient != nil {
		c.TokenBlacklist = redispkg.NewTokenBlacklist(c.RedisClient)
	} else {
		c.TokenBlacklist = memory.NewTokenBlacklist()
	}

	logger.Info("Repositories initialized", "driver", c.Config.Database.Driver)
	return nil
}

// initNotificationPush starts the websocket hub. With NATS every instance publishes to the
// admin's subject and every instance forwards what it receives to its own sockets.
func (c *Container) initNotificationPush() {
	ctx, cancel := context.WithCancel(context.Background())
	c.Hub = websocket.NewHub()
	c.stopHub = cancel
	go c.Hub.Run(ctx)

	if c.NATSClient == nil {
		c.NotificationPublisher = c.Hub
		logger.Info("Notification push initialized", "transport", "in-process")
		return
	}

	c.NotificationPublisher = messaging.NewNATSNotificationPublisher(c.NATSClient.Conn())
	c.NATSSubscriber = natspkg.NewSubscriber(c.NATSClient.Conn())
	c.NotificationBroadcaster = websocket.NewNotificationBroadcaster(
		messaging.NewNATSNotificationSubscriber(c.NATSSubscriber),
		c.Hub,
	)
	if err := c.NotificationBroadcaster.Start(); err != nil {
		logger.Warn("Notification broadcaster failed to start", "error", err)
	}
	logger.Info("Notification push initialized", "transport", "nats")
}

func (c *Container) initServices() error {
	c.NotificationService = serviceimpl.NewNotificationService(
		c.NotificationRepository,
		c.TaskRepository,
		c.UserRepository,
		c.NotificationPublisher,
	)
	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		c.UserRepository,
		c.Transactor,
		c.NotificationService,
	)
	c.UserService = serviceimpl.NewUserService(
		c.UserRepository,
		c.TaskRepository,
		c.TokenBlacklist,
		c.Config.JWT.Secret,
		c.Config.JWT.ExpiresIn,
	)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	c.NotificationCleanupService = serviceimpl.NewNotificationCleanupService(
		serviceimpl.NotificationCleanupConfig{
			RetentionDays: c.Config.Notification.RetentionDays,
			CleanupCron:   c.Config.Notification.CleanupCron,
		},
		c.NotificationService,
		c.EventScheduler,
	)
	if !c.NotificationCleanupService.Enabled() {
		return nil
	}

	if err := c.NotificationCleanupService.RegisterCleanupJob(); err != nil {
		return fmt.Errorf("failed to register notification cleanup: %w", err)
	}
	c.EventScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
	}

	if c.NotificationBroadcaster != nil {
		if err := c.NotificationBroadcaster.Stop(); err != nil {
			logger.Warn("Failed to stop notification broadcaster", "error", err)
		}
	}

	if c.stopHub != nil {
		c.stopHub()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			logger.Warn("Failed to disconnect MongoDB", "error", err)
		} else {
			logger.Info("MongoDB disconnected")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:         c.UserService,
		TaskService:         c.TaskService,
		NotificationService: c.NotificationService,
		HealthChecks:        c.healthChecks(),
	}
}

func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := make(map[string]handlers.HealthCheck)

	if c.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if c.MongoClient != nil {
		checks["database"] = func(ctx context.Context) error {
			return c.MongoClient.Ping(ctx, nil)
		}
	}
	if c.RedisClient != nil {
		checks["redis"] = c.RedisClient.Ping
	}
	if c.NATSClient != nil {
		checks["nats"] = func(context.Context) error {
			if !c.NATSClient.IsConnected() {
				return fmt.Errorf("nats not connected")
			}
			return c.NATSClient.Ping()
		}
	}
	return checks
}
