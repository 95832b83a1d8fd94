package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dungvu242k3/XoXo-sub001/config"
	"github.com/dungvu242k3/XoXo-sub001/internal/api"
	"github.com/dungvu242k3/XoXo-sub001/internal/cache"
	"github.com/dungvu242k3/XoXo-sub001/internal/realtime"
	"github.com/dungvu242k3/XoXo-sub001/internal/remote"
	"github.com/dungvu242k3/XoXo-sub001/internal/store"
	"github.com/dungvu242k3/XoXo-sub001/pkg/database"
	"github.com/dungvu242k3/XoXo-sub001/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := must(database.InitDB(cfg))
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	client := remote.NewClient(db, cfg.OrderRowCap, cfg.EntityRowCap)
	snap := cache.New(rdb, cfg.SnapshotOrderCap, cfg.CacheDebounce)
	st := store.New(client, snap)

	ctx := context.Background()

	// Cached state first so the console serves instantly; the authoritative
	// bootstrap replaces it in the background and only then arms realtime.
	st.Hydrate(ctx)

	listener := realtime.New(rdb, st, cfg.RealtimeDelay, cfg.RealtimeDebounce)
	go func() {
		st.Bootstrap(ctx)
		listener.Start(ctx)
	}()

	r := api.NewRouter(st)
	go func() {
		if err := r.Run(":" + cfg.ServerPort); err != nil {
			logger.Error("http server stopped", zap.Error(err))
		}
	}()
	logger.Info("console up", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	listener.Stop()
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st.PersistNow(flushCtx)
	snap.Stop()
	logger.Info("console down")
}
