package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"focusmap/gateway-service/internal/app/gateway/config"
	"focusmap/gateway-service/internal/app/gateway/handler"
	"focusmap/gateway-service/internal/app/gateway/infrastructure"
	"focusmap/gateway-service/internal/app/gateway/infrastructure/cache"
	"focusmap/gateway-service/internal/app/gateway/infrastructure/grpcclient"
	"focusmap/gateway-service/internal/app/gateway/infrastructure/messaging"
	"focusmap/gateway-service/internal/app/gateway/infrastructure/soapclient"
	"focusmap/gateway-service/internal/app/gateway/processor"
	"focusmap/gateway-service/internal/app/gateway/repository"
	"focusmap/gateway-service/internal/app/gateway/server"
	"focusmap/gateway-service/internal/app/gateway/service"
	"focusmap/gateway-service/internal/app/gateway/transport/grpcserver"
	"focusmap/gateway-service/internal/app/gateway/transport/soapserver"
	"focusmap/pkg/logger"
	"focusmap/pkg/tracing"
)

const serviceName = "gateway-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(serviceName, logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, serviceName, logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	shutdownTracing, tracingEnabled := tracing.SetupFromEnv(serviceName)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Error shutting down tracer provider")
		}
	}()

	// Хранилище поднимается до листенеров
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	var workspaceRepo repository.WorkspaceRepository = repository.NewWorkspaceRepository(db)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, workspace category cache disabled")
		} else {
			defer redisClient.Close()
			workspaceRepo = repository.NewCachedWorkspaceRepository(workspaceRepo, redisClient, cfg.Redis.CategoryTTL)
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("Workspace category cache enabled")
		}
	}
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	var publisher infrastructure.MessagePublisher = messaging.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	}
	defer publisher.Close()

	ratingService := service.NewRatingService(workspaceRepo, ratingRepo)
	commentService := service.NewCommentService(workspaceRepo, commentRepo, publisher)

	grpcServer := grpcserver.NewGRPCServer(grpcserver.NewServer(ratingService), tracingEnabled)
	soapRouter := soapserver.NewRouter(cfg.SOAP.Path, soapserver.NewServer(commentService))

	ratingClient, err := grpcclient.NewRatingClient(grpcclient.Config{
		Address:      cfg.Clients.RatingAddress,
		Timeout:      cfg.Clients.Timeout,
		MaxRetries:   cfg.Clients.MaxRetries,
		RetryBackoff: cfg.Clients.RetryBackoff,
		Tracing:      tracingEnabled,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create rating client")
	}
	defer ratingClient.Close()

	commentClient := soapclient.NewCommentClient(soapclient.Config{
		URL:          cfg.Clients.CommentURL,
		Timeout:      cfg.Clients.Timeout,
		MaxRetries:   cfg.Clients.MaxRetries,
		RetryBackoff: cfg.Clients.RetryBackoff,
	})

	checks := []handler.HealthCheck{{
		Name: "mongodb",
		Check: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{
			Name:     "redis",
			Optional: true,
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}

	router := handler.SetupRoutes(
		handler.RouterConfig{AllowedOrigins: cfg.CORS.AllowedOrigins, Tracing: tracingEnabled},
		handler.NewRatingHandler(ratingClient),
		handler.NewCommentHandler(commentClient),
		handler.NewHealthCheckHandler(serviceName, checks...),
		handler.NewAuthMiddleware(cfg.JWT.Secret),
	)

	// gRPC и SOAP стартуют раньше REST, который к ним обращается
	lifecycle := server.NewLifecycle(
		server.NewGRPCListener("grpc", cfg.GRPC.Address, grpcServer),
		server.NewHTTPListener("soap", cfg.SOAP.Address(), soapRouter),
		server.NewHTTPListener("rest", cfg.Server.Address(), router),
	)
	if err := lifecycle.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start listeners")
	}
	logger.Info().
		Str("rest", cfg.Server.Address()).
		Str("grpc", cfg.GRPC.Address).
		Str("soap", cfg.SOAP.Address()+cfg.SOAP.Path).
		Msg("Gateway started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var scheduler *processor.CronScheduler
	if cfg.Audit.Schedule != "" {
		scheduler = processor.NewCronScheduler(ratingRepo, cfg.Audit.Limit)
		if err := scheduler.Start(ctx, cfg.Audit.Schedule); err != nil {
			logger.Error().Err(err).Msg("Failed to start category audit scheduler")
			scheduler = nil
		}
	}

	if err := lifecycle.Wait(ctx); err != nil {
		logger.Error().Err(err).Msg("Listener failed, shutting down")
	}

	logger.Info().Msg("Shutting down Gateway...")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := lifecycle.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Listeners forced to shutdown")
	}

	logger.Info().Msg("Gateway stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = tryConnect(clientOptions)
		if err == nil {
			return client, nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

func tryConnect(clientOptions *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
