package pubsub

import (
	"stayfront/cache"
	"stayfront/entity"
)

// CacheInvalidated announces that the data behind the listed tags changed.
// Every runtime holding queries that provide one of the tags refetches them.
type CacheInvalidated struct {
	Header entity.EventHeader `json:"header"`
	Tags   []cache.Tag        `json:"tags"`
}
