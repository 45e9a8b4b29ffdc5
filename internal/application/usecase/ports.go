package usecase

import (
	"context"

	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// CacheInvalidator invalida los reportes de estado calculados.
// Cualquier cambio en catálogo, ubicaciones o unidades altera el estado.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

func invalidate(ctx context.Context, c CacheInvalidator, log *logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Bump(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la caché de estado")
	}
}
