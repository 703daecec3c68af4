package pubsub

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/lithammer/shortuuid/v3"
	"github.com/redis/go-redis/v9"

	"stayfront/cache"
	"stayfront/entity"
	"stayfront/tracing"
)

// SubscriberConstructor builds the subscriber for one handler.
type SubscriberConstructor func(handlerName string) (message.Subscriber, error)

// NewPubSub returns the publisher and subscriber constructor for the
// invalidation bus. With a redis client, invalidations travel over redis
// streams so every dashboard replica refetches; without one, an in-process
// gochannel bus carries them.
func NewPubSub(rdb *redis.Client, logger watermill.LoggerAdapter) (message.Publisher, SubscriberConstructor) {
	if rdb == nil {
		channel := gochannel.NewGoChannel(gochannel.Config{}, logger)
		constructor := func(handlerName string) (message.Subscriber, error) {
			return channel, nil
		}
		return tracing.PublisherDecorator{Publisher: channel}, constructor
	}

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		panic(err)
	}

	// Consumer groups carry a per-instance suffix: a group shared between
	// replicas would load-balance invalidations, and a replica that misses
	// one keeps serving stale cache entries.
	instance := shortuuid.New()
	constructor := func(handlerName string) (message.Subscriber, error) {
		return redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        rdb,
			ConsumerGroup: "svc-stayfront." + handlerName + "." + instance,
		}, logger)
	}
	return tracing.PublisherDecorator{Publisher: publisher}, constructor
}

// InvalidationBus publishes CacheInvalidated events on behalf of mutations.
// It satisfies query.InvalidationPublisher.
type InvalidationBus struct {
	bus *cqrs.EventBus
}

func NewInvalidationBus(pub message.Publisher) (InvalidationBus, error) {
	bus, err := cqrs.NewEventBusWithConfig(pub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return "cache." + params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
	})
	if err != nil {
		return InvalidationBus{}, fmt.Errorf("could not create event bus: %w", err)
	}
	return InvalidationBus{bus: bus}, nil
}

func (b InvalidationBus) PublishInvalidation(ctx context.Context, tags []cache.Tag) error {
	return b.bus.Publish(ctx, CacheInvalidated{
		Header: entity.NewEventHeader(),
		Tags:   tags,
	})
}
