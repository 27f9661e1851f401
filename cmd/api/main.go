package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vnaddr/classifier/app/config"
	"github.com/vnaddr/classifier/app/controllers"
	"github.com/vnaddr/classifier/app/gazetteerdata"
	"github.com/vnaddr/classifier/app/services"
	"github.com/vnaddr/classifier/internal/engine"
	"github.com/vnaddr/classifier/internal/search"
	"github.com/vnaddr/classifier/routes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load("config/service.yaml"); err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting address classification service...")

	eng, err := engine.New(mustLoadGazetteerConfig())
	if err != nil {
		logger.Fatal("Failed to build classification engine", zap.Error(err))
	}

	mongoClient, err := initMongoDB(logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	database := mongoClient.Database(config.C.Cache.MongoDB)

	cacheService := mustBuildCache(database, logger)

	addressService := services.NewAddressService(eng, cacheService, database, config.C.Gazetteer.Version, config.C.Thresholds.ReviewLow, logger)

	var searcher *search.GazetteerSearcher
	if config.C.Meili.Host != "" {
		searcher, err = search.NewGazetteerSearcher(search.SearchConfig{
			Host:      config.C.Meili.Host,
			APIKey:    config.C.Meili.APIKey,
			IndexName: config.C.Meili.IndexName,
			Timeout:   30 * time.Second,
		}, logger)
		if err != nil {
			logger.Warn("Gazetteer search mirror unavailable, continuing without it", zap.Error(err))
		}
	}
	adminService := services.NewAdminService(database, eng, searcher, logger)

	addressController := controllers.NewAddressController(addressService, cacheService, config.C.Gazetteer.Version, logger)
	adminController := controllers.NewAdminController(adminService, cacheService, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	routes.SetupAllRoutes(router, addressController, adminController)

	port := config.C.Port
	if port == "" {
		port = "8080"
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", port))
		if err := router.Run(":" + port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = ctx

	logger.Info("Server exited")
}

func mustLoadGazetteerConfig() engine.Config {
	g := config.C.Gazetteer
	cfg, err := gazetteerdata.Load(gazetteerdata.Paths{
		ProvincesPath:   g.ProvincesPath,
		DistrictsPath:   g.DistrictsPath,
		WardsPath:       g.WardsPath,
		ProvinceWarmTxt: g.ProvinceWarmTxt,
		DistrictWarmTxt: g.DistrictWarmTxt,
		WardWarmTxt:     g.WardWarmTxt,
		LCSThreshold:    config.C.Matcher.LCSThreshold,
		EditDistanceK:   config.C.Matcher.EditDistanceK,
	})
	if err != nil {
		panic(err)
	}
	return cfg
}

func mustBuildCache(database *mongo.Database, logger *zap.Logger) services.ICacheService {
	switch config.C.Cache.Backend {
	case "redis":
		svc, err := services.NewRedisCacheService(config.C.Cache.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to create Redis cache service", zap.Error(err))
		}
		return svc
	case "hybrid":
		redisSvc, err := services.NewRedisCacheService(config.C.Cache.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to create Redis cache service", zap.Error(err))
		}
		mongoSvc, err := services.NewMongoCacheService(database, config.C.Cache.L1Size, logger)
		if err != nil {
			logger.Fatal("Failed to create Mongo cache service", zap.Error(err))
		}
		return services.NewHybridCacheService(redisSvc, mongoSvc, logger)
	case "mongo":
		svc, err := services.NewMongoCacheService(database, config.C.Cache.L1Size, logger)
		if err != nil {
			logger.Fatal("Failed to create Mongo cache service", zap.Error(err))
		}
		return svc
	default:
		return services.NewCacheService(10 * time.Minute)
	}
}

func initMongoDB(logger *zap.Logger) (*mongo.Client, error) {
	mongoURI := config.C.Cache.MongoURI
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	logger.Info("Connecting to MongoDB", zap.String("uri", mongoURI))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to MongoDB")
	return client, nil
}
