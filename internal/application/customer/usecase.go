// Package customer implementa el ciclo de vida de clientes: alta, edición,
// borrado lógico, restauración, purga, búsqueda y estadísticas.
package customer

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
	entityName = "customer"
	resource   = "cliente"
)

// TxRunner ejecuta fn dentro de una transacción, con el repositorio atado a esa tx.
type TxRunner interface {
	RunCustomers(ctx context.Context, fn func(repo repository.CustomerRepository) error) error
}

// directRunner ejecuta sin transacción explícita (stores sin soporte de tx).
type directRunner struct {
	repo repository.CustomerRepository
}

func (r directRunner) RunCustomers(ctx context.Context, fn func(repository.CustomerRepository) error) error {
	return fn(r.repo)
}

// UseCase servicio de ciclo de vida de Customer.
type UseCase struct {
	repo           repository.CustomerRepository
	tx             TxRunner
	clock          lifecycle.Clock
	log            *logger.Logger
	metrics        lifecycle.Recorder
	maxUnpaginated int
}

// Option configura el UseCase.
type Option func(*UseCase)

// WithTxRunner ejecuta las mutaciones dentro de transacciones del runner.
func WithTxRunner(tx TxRunner) Option { return func(uc *UseCase) { uc.tx = tx } }

// WithClock inyecta la fuente de tiempo de auditoría.
func WithClock(c lifecycle.Clock) Option { return func(uc *UseCase) { uc.clock = c } }

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option { return func(uc *UseCase) { uc.log = l } }

// WithRecorder inyecta el registro de métricas.
func WithRecorder(r lifecycle.Recorder) Option { return func(uc *UseCase) { uc.metrics = r } }

// WithMaxUnpaginated fija el tope de filas de los listados sin paginar.
func WithMaxUnpaginated(n int) Option { return func(uc *UseCase) { uc.maxUnpaginated = n } }

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository, opts ...Option) *UseCase {
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

// Create valida y persiste un cliente nuevo, activo, con CreatedAt == UpdatedAt.
func (uc *UseCase) Create(ctx context.Context, in dto.CustomerRequest) (_ *entity.Customer, err error) {
	defer uc.observe("create", time.Now(), &err)

	now := lifecycle.Stamp(uc.clock)
	actor := domain.ActorFrom(ctx)
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	applyRequest(c, in)
	if in.ReceivablesBalance.Valid {
		c.ReceivablesBalance = roundMoney(in.ReceivablesBalance.Decimal)
	} else if c.OpeningBalance.Valid {
		c.ReceivablesBalance = c.OpeningBalance.Decimal
	} else {
		c.ReceivablesBalance = decimal.Zero
	}

	err = uc.tx.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		if err := validate(ctx, repo, c, ""); err != nil {
			return err
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("entity", entityName).Str("id", c.ID).Str("op", "create").Msg("cliente creado")
	return c, nil
}

// Update sobrescribe los campos editables. Se permite sobre clientes inactivos.
// No toca ID, CreatedAt, CreatedBy ni Active.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (_ *entity.Customer, err error) {
	defer uc.observe("update", time.Now(), &err)

	var out *entity.Customer
	err = uc.tx.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		c, err := fetch(ctx, repo, id)
		if err != nil {
			return err
		}
		applyRequest(c, in)
		if in.ReceivablesBalance.Valid {
			c.ReceivablesBalance = roundMoney(in.ReceivablesBalance.Decimal)
		}
		if err := validate(ctx, repo, c, c.ID); err != nil {
			return err
		}
		c.UpdatedAt = lifecycle.Touch(uc.clock, c.UpdatedAt)
		c.UpdatedBy = domain.ActorFrom(ctx)
		if err := repo.Update(ctx, c); err != nil {
			return mapNotFound(err)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "update").Msg("cliente actualizado")
	return out, nil
}

// Delete borrado lógico (Active=false). Idempotente sobre clientes ya inactivos.
func (uc *UseCase) Delete(ctx context.Context, id string) (err error) {
	defer uc.observe("delete", time.Now(), &err)

	if _, err = uc.setActive(ctx, id, false); err != nil {
		return err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "delete").Msg("cliente desactivado")
	return nil
}

// Restore reactiva un cliente. No vuelve a comprobar la unicidad del display name:
// si otro cliente activo tomó el nombre mientras estaba inactivo, quedan dos activos con el mismo nombre.
func (uc *UseCase) Restore(ctx context.Context, id string) (_ *entity.Customer, err error) {
	defer uc.observe("restore", time.Now(), &err)

	c, err := uc.setActive(ctx, id, true)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "restore").Msg("cliente restaurado")
	return c, nil
}

// PermanentlyDelete elimina el registro de forma irreversible, activo o no.
func (uc *UseCase) PermanentlyDelete(ctx context.Context, id string) (err error) {
	defer uc.observe("purge", time.Now(), &err)

	err = uc.tx.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		return mapNotFound(repo.Delete(ctx, id))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("entity", entityName).Str("id", id).Str("op", "purge").Msg("cliente eliminado permanentemente")
	return nil
}

// GetByID devuelve el cliente aunque esté inactivo.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return fetch(ctx, uc.repo, id)
}

func (uc *UseCase) setActive(ctx context.Context, id string, active bool) (*entity.Customer, error) {
	var out *entity.Customer
	err := uc.tx.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		c, err := fetch(ctx, repo, id)
		if err != nil {
			return err
		}
		c.Active = active
		c.UpdatedAt = lifecycle.Touch(uc.clock, c.UpdatedAt)
		c.UpdatedBy = domain.ActorFrom(ctx)
		if err := repo.Update(ctx, c); err != nil {
			return mapNotFound(err)
		}
		out = c
		return nil
	})
	return out, err
}

func (uc *UseCase) observe(op string, start time.Time, err *error) {
	uc.metrics.ObserveOperation(entityName, op, start, *err)
}

func fetch(ctx context.Context, repo repository.CustomerRepository, id string) (*entity.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewNotFoundError(resource)
	}
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError(resource)
	}
	return c, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(resource)
	}
	return err
}

// applyRequest copia los campos editables del payload. El estado vacío conserva el actual
// (o el valor por defecto si aún no hay).
func applyRequest(c *entity.Customer, in dto.CustomerRequest) {
	if strings.TrimSpace(in.CustomerType) == "" {
		c.CustomerType = ""
	} else {
		c.CustomerType, _ = entity.ParseCustomerType(in.CustomerType)
	}
	c.Salutation = in.Salutation
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.CompanyName = in.CompanyName
	c.DisplayName = strings.TrimSpace(in.DisplayName)
	c.Email = strings.TrimSpace(in.Email)
	c.WorkPhone = in.WorkPhone
	c.MobilePhone = in.MobilePhone
	c.Language = in.Language
	c.PAN = in.PAN
	c.Currency = in.Currency
	c.OpeningBalance = roundNullMoney(in.OpeningBalance)
	c.PaymentTerms = in.PaymentTerms
	c.EnablePortal = in.EnablePortal
	c.Billing = dto.NewAddress(in.BillingAddress)
	c.Shipping = dto.NewAddress(in.ShippingAddress)
	c.Remarks = in.Remarks
	c.LastContactAt = in.LastContactAt
	if s := strings.TrimSpace(in.Status); s != "" {
		c.Status = s
	} else if c.Status == "" {
		c.Status = entity.DefaultCustomerStatus
	}
}

func roundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(4) }

func roundNullMoney(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(4))
}
