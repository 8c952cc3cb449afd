package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"woyofal/internal/config"
	"woyofal/internal/domain"
	"woyofal/internal/model"
	meter_ps "woyofal/internal/repository/postgres"
	"woyofal/internal/service/api"
	"woyofal/internal/service/maxit"
	"woyofal/internal/service/resolver"
	pkg_config "woyofal/pkg/config"
	"woyofal/pkg/db/postgres"
	"woyofal/pkg/masker"
	"woyofal/pkg/zaplogger"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	envPath, envErr := pkg_config.LoadDotEnv()

	cfg := config.Config{}
	if err := pkg_config.LoadConfigs(&cfg); err != nil {
		panic(err)
	}

	logger, err := zaplogger.New(cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	switch {
	case envErr == nil:
		logger.Info("loaded environment file", zap.String("path", envPath))
	case errors.Is(envErr, pkg_config.ErrNoEnvFile):
		logger.Info("no .env file found, using process environment")
	default:
		logger.Fatal("error loading .env file", zap.Error(envErr))
	}

	if err := masker.LogConfigs(logger, &cfg); err != nil {
		logger.Fatal("error logging configs", zap.Error(err))
	}

	app := fx.New(
		fx.Supply(cfg.ServerConfig, cfg.DBConfig, cfg.MaxitConfig, logger),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Provide(
			newGormDB,
			newMeterStore,
			newRemoteClient,
			resolver.NewResolver,
			newMeterService,
			api.NewHandler,
			newRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func newGormDB(lc fx.Lifecycle, cfg config.DBConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := postgres.NewGormConnection(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.Client{}, &model.Meter{}); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newMeterStore(db *gorm.DB) domain.MeterStore {
	return meter_ps.NewMeterRepository(db)
}

func newRemoteClient(cfg config.MaxitConfig, logger *zap.Logger) domain.RemoteClient {
	return maxit.NewClient(cfg, logger)
}

func newMeterService(r *resolver.Resolver) api.MeterService {
	return r
}

func newRouter(cfg config.ServerConfig, h *api.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	return api.NewRouter(h, logger)
}

func startServer(lc fx.Lifecycle, cfg config.ServerConfig, router *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			logger.Info("http server started", zap.String("addr", cfg.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down http server")
			return srv.Shutdown(ctx)
		},
	})
}
