package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Botiquin-api/internal/application/allowance"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/allowancepkg"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/cache"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Botiquin-api/pkg/config"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// env conexiones y casos de uso compartidos por los subcomandos.
// Con la misma REDIS_URL que la API, una importación invalida también su caché de estado.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	pool  *pgxpool.Pool
	redis *redis.Client
	cache inventory.StatusCache
	repos inventory.Repositories
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	e := &env{cfg: cfg, log: log, pool: pool, repos: postgres.NewStatusRepositories(pool)}
	if cfg.Redis.Enabled() {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, la caché de la API no se invalidará")
		} else {
			e.redis = client
			e.cache = cache.NewStatusCache(client, cfg.App.Name, cfg.Redis.TTL)
		}
	}
	return e, nil
}

func (e *env) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	e.pool.Close()
}

func (e *env) allowances() *allowance.UseCase {
	return allowance.NewUseCase(
		e.repos.Allowances, e.repos.ReqQtys, e.repos.Molecules, e.repos.Equipments,
		postgres.NewTxRunner(e.pool), allowancepkg.Codec{}, e.cache, e.log,
	)
}

func (e *env) status() *inventory.StatusUseCase {
	return inventory.NewStatusUseCase(e.repos, e.cache, e.log, e.cfg.Inventory.ExpiryWarningDays)
}
