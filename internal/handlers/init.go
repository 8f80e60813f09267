package handlers

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"spyglass/internal/analytics"
	"spyglass/internal/metrics"
	"spyglass/internal/store"
	"spyglass/pkg/cache"
	"spyglass/pkg/database"
	"spyglass/pkg/logging"
)

var (
	db             database.PostgresConn
	redisClient    goredis.UniversalClient
	logger         logging.Logger
	serviceMetrics *metrics.Metrics
	activityStore  *store.ActivityStore
	pipeline       *analytics.Pipeline
	channelCache   *cache.Cache
)

// channelCacheTTL is how long the per-creator channel list is considered
// fresh before a background refresh kicks in.
const channelCacheTTL = 5 * time.Minute

// Init initializes the handlers package with its dependencies. redisClient
// may be nil; redis-backed features degrade gracefully without it.
func Init(pg database.PostgresConn, rdb goredis.UniversalClient, log logging.Logger, m *metrics.Metrics) {
	db = pg
	redisClient = rdb
	logger = log
	serviceMetrics = m
	activityStore = store.NewActivityStore(pg, log)
	pipeline = analytics.NewPipeline(log)
	channelCache = cache.New(cache.Options{
		TTL:                  channelCacheTTL,
		StaleWhileRevalidate: channelCacheTTL,
		NegativeTTL:          30 * time.Second,
		MaxEntries:           1024,
	}, cache.MetricsHooks{
		OnHit: func(map[string]string) {
			if serviceMetrics != nil {
				serviceMetrics.CacheHits.WithLabelValues("channels", "hit").Inc()
			}
		},
		OnMiss: func(map[string]string) {
			if serviceMetrics != nil {
				serviceMetrics.CacheHits.WithLabelValues("channels", "miss").Inc()
			}
		},
	})
}
