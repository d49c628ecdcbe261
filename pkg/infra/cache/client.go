package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	EnrichmentKeyPattern = "trustscan:enrichment:%s"

	EnrichmentTTLName = "enrichment"

	defaultLocalTTL = 5 * time.Minute
)

var ErrCacheMiss = errors.New("cache miss")

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	// Get returns ErrCacheMiss when the key is in neither tier.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	// RedisClient is nil for a memory-only client.
	RedisClient() *redis.Client
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap
	ClearAllTTLMaps()
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
	LocalTTL time.Duration
}

type client struct {
	redisClient *redis.Client
	localCache  *TTLMap
	ttlMaps     sync.Map
}

// NewClient connects to redis and fronts it with an in-process TTL map.
func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return NewClientFromRedis(redisClient, config.LocalTTL), nil
}

// NewClientFromRedis wraps an existing redis client without pinging it.
func NewClientFromRedis(redisClient *redis.Client, localTTL time.Duration) Client {
	if localTTL <= 0 {
		localTTL = defaultLocalTTL
	}
	return &client{
		redisClient: redisClient,
		localCache:  NewTTLMap(localTTL),
	}
}

// NewMemoryClient keeps everything in process. Used when redis is disabled.
func NewMemoryClient(localTTL time.Duration) Client {
	return NewClientFromRedis(nil, localTTL)
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	if value, ok := c.localCache.Get(key); ok {
		str, err := safeStringCast(value)
		if err != nil {
			return "", fmt.Errorf("cache value error: %w", err)
		}
		return str, nil
	}
	if c.redisClient == nil {
		return "", ErrCacheMiss
	}
	value, err := c.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	c.localCache.Set(key, value)
	return value, nil
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if c.redisClient != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := c.redisClient.Set(ctx, key, value, expiration).Err(); err != nil {
			return err
		}
	}
	c.localCache.SetWithTTL(key, value, expiration)
	return nil
}

func (c *client) Delete(ctx context.Context, key string) error {
	if c.redisClient != nil {
		if err := c.redisClient.Del(ctx, key).Err(); err != nil {
			return err
		}
	}
	c.localCache.Delete(key)
	return nil
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	ttlMap := NewTTLMap(ttl)
	c.ttlMaps.Store(name, ttlMap)
	return ttlMap
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		ttlMap, err := safeTTLMapCast(value)
		if err != nil {
			return nil
		}
		return ttlMap
	}
	return nil
}

func (c *client) ClearAllTTLMaps() {
	c.localCache.Clear()
	c.ttlMaps.Range(func(key, value interface{}) bool {
		if ttlMap, ok := value.(*TTLMap); ok {
			ttlMap.Clear()
		}
		return true
	})
}

func safeStringCast(value interface{}) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid type assertion to string")
	}
	return str, nil
}

func safeTTLMapCast(value interface{}) (*TTLMap, error) {
	ttlMap, ok := value.(*TTLMap)
	if !ok {
		return nil, fmt.Errorf("invalid type assertion to TTLMap")
	}
	return ttlMap, nil
}
