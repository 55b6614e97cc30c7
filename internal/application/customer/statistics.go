package customer

import (
	"context"

	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"golang.org/x/sync/errgroup"
)

// GetStatistics conteos agregados calculados en cada llamada (sin caché).
// Las cuatro consultas corren en paralelo; el primer error cancela el resto.
func (uc *UseCase) GetStatistics(ctx context.Context) (*dto.CustomerStatisticsResponse, error) {
	var out dto.CustomerStatisticsResponse
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.repo.CountActive(ctx)
		out.TotalCustomers = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountActiveByType(ctx, entity.CustomerTypeBusiness)
		out.BusinessCount = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountActiveByType(ctx, entity.CustomerTypeIndividual)
		out.IndividualCount = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountWithOutstandingBalance(ctx)
		out.WithOutstandingBalance = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
