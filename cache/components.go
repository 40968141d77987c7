// Package cache puts redis in front of a component source.
//
// Redis failures never fail a request: lookups fall through to the
// source, and a circuit breaker stops talking to redis for a while after
// repeated failures.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/sengkeat-dex/Tokenize/metrics"
	"github.com/sengkeat-dex/Tokenize/models"
	"github.com/sengkeat-dex/Tokenize/repositories"
)

const keyPrefix = "tokenize:components:"

type Components struct {
	source  repositories.ComponentReader
	client  redis.Cmdable
	breaker *gobreaker.CircuitBreaker
	ttl     time.Duration
	metrics *metrics.Registry
}

func NewComponents(source repositories.ComponentReader, client redis.Cmdable, ttl time.Duration, m *metrics.Registry) *Components {
	settings := gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cache breaker state changed")
		},
	}
	return &Components{
		source:  source,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(settings),
		ttl:     ttl,
		metrics: m,
	}
}

func (c *Components) GetAllComponents(ctx context.Context) ([]models.Component, error) {
	return c.load(ctx, keyPrefix+"all", c.source.GetAllComponents)
}

func (c *Components) GetComponentsByType(ctx context.Context, mainType string) ([]models.Component, error) {
	return c.load(ctx, keyPrefix+"type:"+url.QueryEscape(mainType), func(ctx context.Context) ([]models.Component, error) {
		return c.source.GetComponentsByType(ctx, mainType)
	})
}

func (c *Components) GetComponentsBySubType(ctx context.Context, mainType, subType string) ([]models.Component, error) {
	key := keyPrefix + "sub:" + url.QueryEscape(mainType) + ":" + url.QueryEscape(subType)
	return c.load(ctx, key, func(ctx context.Context) ([]models.Component, error) {
		return c.source.GetComponentsBySubType(ctx, mainType, subType)
	})
}

func (c *Components) load(ctx context.Context, key string, fetch func(context.Context) ([]models.Component, error)) ([]models.Component, error) {
	cached, found, err := c.get(ctx, key)
	if err != nil {
		c.count("error")
		log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
	} else if found {
		c.count("hit")
		return cached, nil
	} else {
		c.count("miss")
	}

	components, fetchErr := fetch(ctx)
	if fetchErr != nil {
		return nil, fetchErr
	}

	// only write back when redis answered the lookup
	if err == nil {
		if err := c.put(ctx, key, components); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache store failed")
		}
	}
	return components, nil
}

func (c *Components) get(ctx context.Context, key string) ([]models.Component, bool, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		buf, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return buf, err
	})
	if err != nil {
		return nil, false, err
	}
	buf, _ := result.([]byte)
	if buf == nil {
		return nil, false, nil
	}

	var components []models.Component
	if err := json.Unmarshal(buf, &components); err != nil {
		return nil, false, err
	}
	return components, true, nil
}

func (c *Components) put(ctx context.Context, key string, components []models.Component) error {
	payload, err := json.Marshal(components)
	if err != nil {
		return err
	}
	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, string(payload), c.ttl).Err()
	})
	return err
}

func (c *Components) count(result string) {
	if c.metrics != nil {
		c.metrics.CacheRequests.WithLabelValues(result).Inc()
	}
}
