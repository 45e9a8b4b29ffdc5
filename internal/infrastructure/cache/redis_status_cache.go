// Package cache guarda en Redis los reportes de estado ya calculados.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
)

var _ inventory.StatusCache = (*StatusCache)(nil)

const (
	generationKey = "gen"
	defaultTTL    = 5 * time.Minute
)

// StatusCache implementa inventory.StatusCache sobre Redis.
//
// La generación es un contador (INCR): cada mutación lo incrementa y las claves de
// generaciones anteriores dejan de leerse y expiran solas por TTL.
type StatusCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Connect abre la conexión a partir de REDIS_URL y verifica con PING.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opt.MaxRetries = 3
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewStatusCache construye la caché. prefix separa instalaciones que compartan Redis.
func NewStatusCache(client *redis.Client, prefix string, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &StatusCache{client: client, prefix: prefix + ":", ttl: ttl}
}

// Generation devuelve la generación actual de datos (0 si nunca se incrementó).
func (c *StatusCache) Generation(ctx context.Context) (int64, error) {
	val, err := c.client.Get(ctx, c.prefix+generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis generation %q: %w", val, err)
	}
	return n, nil
}

// Bump invalida todos los reportes guardados.
func (c *StatusCache) Bump(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.prefix+generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}

// Get decodifica el valor JSON guardado en dst.
func (c *StatusCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set guarda v como JSON con el TTL configurado.
func (c *StatusCache) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
