package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stayfront/cache"
	"stayfront/gateway"
	"stayfront/http"
	"stayfront/pubsub"
	"stayfront/query"
)

type Service struct {
	watermillRouter *message.Router
	httpServer      *http.Server
}

// New wires the cache store, query runtime, invalidation bus and dashboard
// server. A nil redis client keeps the invalidation bus in process.
func New(
	addr string,
	redisClient *redis.Client,
	apiClient *gateway.Client,
) Service {
	watermillLogger := pubsub.NewLogger(logrus.NewEntry(logrus.StandardLogger()))

	publisher, subscriberConstructor := pubsub.NewPubSub(redisClient, watermillLogger)

	bus, err := pubsub.NewInvalidationBus(publisher)
	if err != nil {
		panic(fmt.Errorf("failed to create invalidation bus: %w", err))
	}

	runtime := query.NewRuntime(cache.NewStore(), bus)

	watermillRouter, err := pubsub.NewWatermillRouter(subscriberConstructor, runtime, watermillLogger)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(
		addr,
		runtime,
		query.NewBookings(gateway.NewBookingsClient(apiClient)),
		query.NewHotels(gateway.NewHotelsClient(apiClient)),
		query.NewPayments(gateway.NewPaymentsClient(apiClient)),
		query.NewTickets(gateway.NewTicketsClient(apiClient)),
	)

	return Service{
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// The HTTP server must not report healthy before the invalidation
		// handlers are running.
		<-s.watermillRouter.Running()
		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
