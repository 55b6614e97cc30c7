// Package item implementa el ciclo de vida de artículos (bienes y servicios).
// Misma forma que el paquete customer; la unicidad es global (nombre y SKU).
package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
	"github.com/jhoicas/maestros-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	entityName = "item"
	resource   = "artículo"
)

// TxRunner ejecuta fn dentro de una transacción, con el repositorio atado a esa tx.
type TxRunner interface {
	RunItems(ctx context.Context, fn func(repo repository.ItemRepository) error) error
}

type directRunner struct {
	repo repository.ItemRepository
}

func (r directRunner) RunItems(ctx context.Context, fn func(repository.ItemRepository) error) error {
	return fn(r.repo)
}

// UseCase servicio de ciclo de vida de Item.
type UseCase struct {
	repo           repository.ItemRepository
	tx             TxRunner
	clock          lifecycle.Clock
	log            *logger.Logger
	metrics        lifecycle.Recorder
	maxUnpaginated int
}

// Option configura el UseCase.
type Option func(*UseCase)

func WithTxRunner(tx TxRunner) Option         { return func(uc *UseCase) { uc.tx = tx } }
func WithClock(c lifecycle.Clock) Option       { return func(uc *UseCase) { uc.clock = c } }
func WithLogger(l *logger.Logger) Option       { return func(uc *UseCase) { uc.log = l } }
func WithRecorder(r lifecycle.Recorder) Option { return func(uc *UseCase) { uc.metrics = r } }
func WithMaxUnpaginated(n int) Option          { return func(uc *UseCase) { uc.maxUnpaginated = n } }

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ItemRepository, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:    repo,
		tx:      directRunner{repo: repo},
		clock:   lifecycle.SystemClock{},
		log:     logger.Nop(),
		metrics: lifecycle.NopRecorder{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.maxUnpaginated = lifecycle.UnpaginatedLimit(uc.maxUnpaginated)
	return uc
}

// Create valida y persiste un artículo nuevo y activo. Sellable/Purchasable por defecto true.
func (uc *UseCase) Create(ctx context.Context, in dto.ItemRequest) (_ *entity.Item, err error) {
	defer uc.observe("create", time.Now(), &err)

	now := lifecycle.Stamp(uc.clock)
	actor := domain.ActorFrom(ctx)
	it := &entity.Item{
		ID:          uuid.New().String(),
		Sellable:    true,
		Purchasable: true,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	applyRequest(it, in)

	err = uc.tx.RunItems(ctx, func(repo repository.ItemRepository) error {
		if err := validate(ctx, repo, it, ""); err != nil {
			return err
		}
		return repo.Create(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("entity", entityName).Str("id", it.ID).Str("op", "create").Msg("artículo creado")
	return it, nil
}

// Update sobrescribe los campos editables; permitido sobre artículos inactivos.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (_ *entity.Item, err error) {
	defer uc.observe("update", time.Now(), &err)

	var out *entity.Item
	err = uc.tx.RunItems(ctx, func(repo repository.ItemRepository) error {
		it, err := fetch(ctx, repo, id)
		if err != nil {
			return err
		}
		applyRequest(it, in)
		if err := validate(ctx, repo, it, it.ID); err != nil {
			return err
		}
		it.UpdatedAt = lifecycle.Touch(uc.clock, it.UpdatedAt)
		it.UpdatedBy = domain.ActorFrom(ctx)
		if err := repo.Update(ctx, it); err != nil {
			return mapNotFound(err)
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "update").Msg("artículo actualizado")
	return out, nil
}

// Delete borrado lógico; idempotente.
func (uc *UseCase) Delete(ctx context.Context, id string) (err error) {
	defer uc.observe("delete", time.Now(), &err)

	if _, err = uc.setActive(ctx, id, false); err != nil {
		return err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "delete").Msg("artículo desactivado")
	return nil
}

// Restore reactiva un artículo. Nombre y SKU son únicos globalmente, así que no puede haber colisión.
func (uc *UseCase) Restore(ctx context.Context, id string) (_ *entity.Item, err error) {
	defer uc.observe("restore", time.Now(), &err)

	it, err := uc.setActive(ctx, id, true)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "restore").Msg("artículo restaurado")
	return it, nil
}

// PermanentlyDelete elimina el registro de forma irreversible.
func (uc *UseCase) PermanentlyDelete(ctx context.Context, id string) (err error) {
	defer uc.observe("purge", time.Now(), &err)

	err = uc.tx.RunItems(ctx, func(repo repository.ItemRepository) error {
		return mapNotFound(repo.Delete(ctx, id))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "purge").Msg("artículo eliminado permanentemente")
	return nil
}

// GetByID devuelve el artículo aunque esté inactivo.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return fetch(ctx, uc.repo, id)
}

// GetBySKU busca por SKU exacto, activo o no.
func (uc *UseCase) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewNotFoundError(resource)
	}
	it, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.NewNotFoundError(resource)
	}
	return it, nil
}

func (uc *UseCase) setActive(ctx context.Context, id string, active bool) (*entity.Item, error) {
	var out *entity.Item
	err := uc.tx.RunItems(ctx, func(repo repository.ItemRepository) error {
		it, err := fetch(ctx, repo, id)
		if err != nil {
			return err
		}
		it.Active = active
		it.UpdatedAt = lifecycle.Touch(uc.clock, it.UpdatedAt)
		it.UpdatedBy = domain.ActorFrom(ctx)
		if err := repo.Update(ctx, it); err != nil {
			return mapNotFound(err)
		}
		out = it
		return nil
	})
	return out, err
}

func (uc *UseCase) observe(op string, start time.Time, err *error) {
	uc.metrics.ObserveOperation(entityName, op, start, *err)
}

func fetch(ctx context.Context, repo repository.ItemRepository, id string) (*entity.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewNotFoundError(resource)
	}
	it, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.NewNotFoundError(resource)
	}
	return it, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(resource)
	}
	return err
}

// applyRequest copia los campos editables. Montos y cantidades a 4 decimales, tasa a 2.
func applyRequest(it *entity.Item, in dto.ItemRequest) {
	it.Name = strings.TrimSpace(in.Name)
	if strings.TrimSpace(in.Type) == "" {
		it.Type = ""
	} else {
		it.Type, _ = entity.ParseItemType(in.Type)
	}
	it.Unit = in.Unit
	if in.Sellable != nil {
		it.Sellable = *in.Sellable
	}
	it.SellingPrice = round(in.SellingPrice, 4)
	it.SalesAccount = in.SalesAccount
	it.SalesDescription = in.SalesDescription
	if in.Purchasable != nil {
		it.Purchasable = *in.Purchasable
	}
	it.CostPrice = round(in.CostPrice, 4)
	it.PurchaseAccount = in.PurchaseAccount
	it.PurchaseDescription = in.PurchaseDescription
	it.PreferredVendor = in.PreferredVendor
	it.StockQuantity = round(in.StockQuantity, 4)
	it.ReorderLevel = round(in.ReorderLevel, 4)
	it.SKU = strings.TrimSpace(in.SKU)
	it.Barcode = in.Barcode
	it.TaxRate = round(in.TaxRate, 2)
	it.HSNCode = in.HSNCode
}

func round(d decimal.NullDecimal, places int32) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(places))
}
