package item_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Propagación de errores del store (repositorio simulado con gomock)
// ──────────────────────────────────────────────────────────────────────────────

type StoreErrorsSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	repo *mocks.MockItemRepository
	uc   *item.UseCase
}

func TestStoreErrorsSuite(t *testing.T) {
	suite.Run(t, new(StoreErrorsSuite))
}

func (s *StoreErrorsSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockItemRepository(s.ctrl)
	s.uc = item.NewUseCase(s.repo, item.WithClock(lifecycle.NewStepClock(t0, time.Second)))
}

func (s *StoreErrorsSuite) TearDownTest() {
	s.ctrl.Finish()
}

var errDriver = errors.New("conn refused")

func (s *StoreErrorsSuite) TestCreate() {
	ctx := context.Background()

	s.Run("falla de la sonda de nombre no llega a insertar", func() {
		s.repo.EXPECT().ExistsName(gomock.Any(), "Widget", "").
			Return(false, domain.NewStoreError("item.exists_name", errDriver))

		_, err := s.uc.Create(ctx, goods("Widget"))
		s.ErrorIs(err, domain.ErrStore)
		s.ErrorIs(err, errDriver)
	})

	s.Run("SKU tomado es conflicto sin insertar", func() {
		in := goods("Widget")
		in.SKU = "W-1"
		s.repo.EXPECT().ExistsName(gomock.Any(), "Widget", "").Return(false, nil)
		s.repo.EXPECT().ExistsSKU(gomock.Any(), "W-1", "").Return(true, nil)

		_, err := s.uc.Create(ctx, in)
		s.ErrorIs(err, domain.ErrConflict)
	})

	s.Run("sin SKU no se consulta la unicidad de SKU", func() {
		s.repo.EXPECT().ExistsName(gomock.Any(), "Widget", "").Return(false, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, it *entity.Item) error {
				s.Equal("Widget", it.Name)
				s.True(it.Active)
				return nil
			})

		_, err := s.uc.Create(ctx, goods("Widget"))
		s.NoError(err)
	})

	s.Run("conflicto detectado por la restricción del store", func() {
		s.repo.EXPECT().ExistsName(gomock.Any(), "Widget", "").Return(false, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(domain.NewConflictError("name", "Widget", "ya existe un artículo con ese nombre"))

		_, err := s.uc.Create(ctx, goods("Widget"))
		s.ErrorIs(err, domain.ErrConflict)
	})

	s.Run("validación falla antes de tocar el store", func() {
		_, err := s.uc.Create(ctx, goods(""))
		s.ErrorIs(err, domain.ErrInvalidInput)
	})
}

func (s *StoreErrorsSuite) TestUpdate() {
	ctx := context.Background()
	stored := &entity.Item{ID: "it-1", Name: "Widget", Type: entity.ItemTypeGoods, Active: true, UpdatedAt: t0}

	s.Run("registro borrado entre lectura y escritura es not found", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "it-1").Return(stored, nil)
		s.repo.EXPECT().ExistsName(gomock.Any(), "Widget", "it-1").Return(false, nil)
		s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrNotFound)

		_, err := s.uc.Update(ctx, "it-1", goods("Widget"))
		var nf *domain.NotFoundError
		s.ErrorAs(err, &nf)
	})

	s.Run("error de lectura se propaga", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "it-1").Return(nil, domain.NewStoreError("item.get", errDriver))

		_, err := s.uc.Update(ctx, "it-1", goods("Widget"))
		s.ErrorIs(err, domain.ErrStore)
	})
}

func (s *StoreErrorsSuite) TestDelete_RegistroInexistente() {
	s.repo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)
	err := s.uc.Delete(context.Background(), "nope")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreErrorsSuite) TestGetStatistics_PrimerErrorGana() {
	s.repo.EXPECT().CountActive(gomock.Any()).Return(int64(3), nil).AnyTimes()
	s.repo.EXPECT().CountActiveByType(gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()
	s.repo.EXPECT().CountLowStock(gomock.Any()).Return(int64(0), domain.NewStoreError("item.count_low_stock", errDriver))

	stats, err := s.uc.GetStatistics(context.Background())
	s.Nil(stats)
	s.ErrorIs(err, errDriver)
}

func (s *StoreErrorsSuite) TestListados_UsanElTope() {
	uc := item.NewUseCase(s.repo, item.WithMaxUnpaginated(25))
	s.repo.EXPECT().ListLowStock(gomock.Any(), 25).Return([]*entity.Item{}, nil)
	s.repo.EXPECT().ListSellable(gomock.Any(), 25).Return(nil, domain.NewStoreError("item.list_sellable", errDriver))

	_, err := uc.GetLowStock(context.Background())
	s.NoError(err)
	_, err = uc.GetSellable(context.Background())
	s.ErrorIs(err, domain.ErrStore)
}
