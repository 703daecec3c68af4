package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stayfront/config"
	"stayfront/gateway"
	"stayfront/service"
	"stayfront/session"
	"stayfront/stubapi"
	"stayfront/tracing"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		os.Exit(1)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.JaegerEndpoint != "" {
		tp := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logrus.WithError(err).Error("failed to shutdown trace provider")
			}
		}()
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
	}

	tokens := sessionChain(cfg, redisClient)
	apiClient := gateway.NewClient(cfg.APIBaseURL, tokens)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.StubAPIAddr != "" {
		stub := stubapi.NewServer()
		stub.Seed()
		g.Go(func() error {
			return stub.Run(ctx, cfg.StubAPIAddr)
		})
	}

	g.Go(func() error {
		return service.New(cfg.HTTPAddr, redisClient, apiClient).Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("service stopped")
	}
}

// sessionChain prefers the in-memory session, then the redis-persisted one,
// then the configured fallback token. Requests go out without a bearer token
// when the whole chain comes up empty.
func sessionChain(cfg config.Config, redisClient *redis.Client) session.TokenSource {
	sources := []session.TokenSource{session.NewMemory()}
	if redisClient != nil {
		sources = append(sources, session.NewRedisStore(redisClient))
	}
	if cfg.SessionToken != "" {
		sources = append(sources, session.Static(cfg.SessionToken))
	}
	return session.Chain(sources...)
}
