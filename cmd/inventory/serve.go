package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/notification"
	"github.com/fekuna/omnipos-inventory-service/internal/server"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion"
	"github.com/fekuna/omnipos-inventory-service/migrations"
	"github.com/fekuna/omnipos-inventory-service/pkg/broker"
	"github.com/fekuna/omnipos-inventory-service/pkg/cache"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	alertH "github.com/fekuna/omnipos-inventory-service/internal/alert/handler"
	alertJobPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/job"
	alertRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/repository"
	alertUCPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/usecase"

	auditRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/audit/repository"
	auditUCPkg "github.com/fekuna/omnipos-inventory-service/internal/audit/usecase"

	invH "github.com/fekuna/omnipos-inventory-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-inventory-service/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-inventory-service/internal/order/handler"
	orderListenerPkg "github.com/fekuna/omnipos-inventory-service/internal/order/listener"
	orderRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-inventory-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-inventory-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-inventory-service/internal/product/usecase"

	purchaseH "github.com/fekuna/omnipos-inventory-service/internal/purchase/handler"
	purchaseRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/purchase/repository"
	purchaseUCPkg "github.com/fekuna/omnipos-inventory-service/internal/purchase/usecase"

	saleH "github.com/fekuna/omnipos-inventory-service/internal/sale/handler"
	saleRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-inventory-service/internal/sale/usecase"

	unitH "github.com/fekuna/omnipos-inventory-service/internal/unitconversion/handler"
	unitRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/unitconversion/repository"
	unitUCPkg "github.com/fekuna/omnipos-inventory-service/internal/unitconversion/usecase"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the gRPC health endpoint and the background workers",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func listenAddr(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Configuration and logger
	cfg := loadConfig()
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Database
	db, err := openDB(cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := migrations.Up(db.DB); err != nil {
			return err
		}
		appLogger.Info("Schema migrated")
	}

	txm := postgres.NewTxManager(db, cfg.Postgres.TxMaxRetries)
	clk := clock.Real{}

	// 3. Repositories
	invRepo := invRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)
	auditRepo := auditRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	unitRepo := unitRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	purchaseRepo := purchaseRepoPkg.NewPGRepository(db)

	// 4. Redis, optional: conversions fall back to the database
	var conversionCache unitconversion.Cache = cache.Nop{}
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, unit conversions will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		conversionCache = redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Kafka
	var notifier notification.Notifier = notification.Nop{}
	var consumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderUpdatesTopic,
		})
		defer producer.Close()
		notifier = notification.NewKafkaNotifier(producer)

		consumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrdersTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Kafka configured",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("orders_topic", cfg.Kafka.OrdersTopic),
			zap.String("updates_topic", cfg.Kafka.OrderUpdatesTopic),
		)
	}

	// 6. Use cases
	auditSink := auditUCPkg.NewAuditSink(auditRepo, clk)
	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, invRepo, clk, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, txm, alertUC, auditSink, clk, appLogger)
	unitUC := unitUCPkg.NewConversionUseCase(unitRepo, txm, conversionCache, cfg.Redis.ConversionTTL, auditSink, clk, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(txm, saleRepo, prodRepo, invRepo, invUC, unitUC, auditSink, clk, appLogger)
	purchaseUC := purchaseUCPkg.NewPurchaseUseCase(txm, purchaseRepo, prodRepo, invRepo, invUC, auditSink, clk, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(txm, orderRepo, saleRepo, prodRepo, invRepo, invUC, auditSink, notifier, clk, appLogger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// 7. Workers
	listenerDone := make(chan struct{})
	if consumer != nil {
		go func() {
			defer close(listenerDone)
			orderListenerPkg.NewOrderListener(consumer, orderUC, appLogger).Start(ctx)
		}()
	} else {
		close(listenerDone)
	}

	reconcileJob := alertJobPkg.NewReconcileJob(alertUC, cfg.Alert.ReconcileSchedule, appLogger)
	if err := reconcileJob.Start(); err != nil {
		return err
	}

	// 8. HTTP
	debug := !cfg.IsProduction()
	router := server.NewRouter(appLogger, server.RouterOptions{
		JWTSecret: cfg.JWT.SecretKey,
		RateLimit: cfg.Server.RateLimitRPS,
		RateBurst: cfg.Server.RateLimitBurst,
	},
		invH.NewInventoryHandler(invUC, appLogger, debug),
		alertH.NewAlertHandler(alertUC, appLogger, debug),
		unitH.NewConversionHandler(unitUC, appLogger, debug),
		prodH.NewProductHandler(prodUC, appLogger, debug),
		orderH.NewOrderHandler(orderUC, appLogger, debug),
		saleH.NewSaleHandler(saleUC, appLogger, debug),
		purchaseH.NewPurchaseHandler(purchaseUC, appLogger, debug),
	)
	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 9. gRPC
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		return err
	}
	grpcServer, healthServer := server.NewGRPCServer(appLogger)

	quitCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(quitCtx)
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")
		healthServer.Shutdown()
		cancel()
		<-reconcileJob.Stop().Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("HTTP shutdown incomplete", zap.Error(err))
		}
		grpcServer.GracefulStop()

		// No new orders can arrive now; let queued order updates reach the
		// producer before its deferred Close.
		<-listenerDone
		orderUC.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server failed", zap.Error(err))
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
