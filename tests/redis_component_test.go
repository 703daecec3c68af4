package tests

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"stayfront/cache"
	"stayfront/entity"
	"stayfront/gateway"
	"stayfront/pubsub"
	"stayfront/query"
)

// TestRedisInvalidationFanOut runs the invalidation round trip over real
// redis streams: two replicas share the bus, a mutation on one makes both
// refetch their mounted queries. Each replica consumes through its own
// consumer group, so neither steals the other's invalidation.
func TestRedisInvalidationFanOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		container, addr := startRedisContainer(t)
		defer func() {
			require.NoError(t, container.Terminate(context.Background()))
		}()
		redisAddr = addr
	}

	// Both replicas read the same backend, so a write through either is
	// visible to both on refetch.
	api := &gateway.BookingsMock{}

	replicaA := startReplica(t, ctx, redisAddr, api)
	replicaB := startReplica(t, ctx, redisAddr, api)
	defer func() {
		cancel()
		<-replicaA.stopped
		<-replicaB.stopped
		require.NoError(t, replicaA.rdb.Close())
		require.NoError(t, replicaB.rdb.Close())
	}()

	listA, err := query.Subscribe(ctx, replicaA.runtime, replicaA.bookings.List(gateway.BookingListParams{}))
	require.NoError(t, err)
	defer listA.Close()

	listB, err := query.Subscribe(ctx, replicaB.runtime, replicaB.bookings.List(gateway.BookingListParams{}))
	require.NoError(t, err)
	defer listB.Close()

	created, err := query.Mutate(ctx, replicaA.runtime, replicaA.bookings.Create(entity.NewBooking{
		RoomID:      1,
		UserID:      7,
		TotalAmount: 240,
	}))
	require.NoError(t, err)

	assertEventuallyListed(t, listA, created.ID)
	assertEventuallyListed(t, listB, created.ID)
}

type replica struct {
	rdb      *goredis.Client
	runtime  *query.Runtime
	bookings query.Bookings
	stopped  chan struct{}
}

func startReplica(t *testing.T, ctx context.Context, redisAddr string, api query.BookingsAPI) *replica {
	t.Helper()

	rdb := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	watermillLogger := pubsub.NewLogger(logrus.NewEntry(logrus.StandardLogger()))

	publisher, subscriberConstructor := pubsub.NewPubSub(rdb, watermillLogger)

	bus, err := pubsub.NewInvalidationBus(publisher)
	require.NoError(t, err)

	runtime := query.NewRuntime(cache.NewStore(), bus)

	router, err := pubsub.NewWatermillRouter(subscriberConstructor, runtime, watermillLogger)
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		assert.NoError(t, router.Run(ctx))
		close(stopped)
	}()
	<-router.Running()

	return &replica{
		rdb:      rdb,
		runtime:  runtime,
		bookings: query.NewBookings(api),
		stopped:  stopped,
	}
}

func assertEventuallyListed(t *testing.T, h *query.Handle[entity.Paginated[entity.Booking]], id int64) {
	t.Helper()

	assert.Eventually(t, func() bool {
		page, err := h.Result()
		if err != nil {
			return false
		}
		for _, b := range page.Data {
			if b.ID == id {
				return true
			}
		}
		return false
	}, 10*time.Second, 50*time.Millisecond)
}

func startRedisContainer(t *testing.T) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	redisContainer, err := tcredis.RunContainer(ctx,
		testcontainers.WithImage("docker.io/redis:7"),
	)
	require.NoError(t, err)

	uri, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)

	return redisContainer, strings.Replace(uri, "redis://", "", 1)
}
