package item

import (
	"context"

	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"golang.org/x/sync/errgroup"
)

// GetStatistics conteos agregados siempre frescos: activos, por tipo y bajo stock.
func (uc *UseCase) GetStatistics(ctx context.Context) (*dto.ItemStatisticsResponse, error) {
	var out dto.ItemStatisticsResponse
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.repo.CountActive(ctx)
		out.TotalItems = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountActiveByType(ctx, entity.ItemTypeGoods)
		out.GoodsCount = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountActiveByType(ctx, entity.ItemTypeService)
		out.ServicesCount = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountLowStock(ctx)
		out.LowStockCount = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
