package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerCols = func() []string {
	cols := []string{
		"id", "customer_type", "salutation", "first_name", "last_name", "company_name",
		"display_name", "email", "work_phone", "mobile_phone", "language", "pan", "currency",
		"opening_balance", "receivables_balance", "payment_terms", "enable_portal",
	}
	cols = append(cols, addressCols("billing")...)
	cols = append(cols, addressCols("shipping")...)
	return append(cols,
		"remarks", "status", "active", "last_contact_at",
		"created_at", "updated_at", "created_by", "updated_by",
	)
}()

var customerColumns = strings.Join(customerCols, ", ")

var customerSortColumns = map[string]string{
	repository.CustomerSortID:                 "id",
	repository.CustomerSortDisplayName:        "display_name",
	repository.CustomerSortCompanyName:        "company_name",
	repository.CustomerSortEmail:              "email",
	repository.CustomerSortCustomerType:       "customer_type",
	repository.CustomerSortReceivablesBalance: "receivables_balance",
	repository.CustomerSortCreatedAt:          "created_at",
	repository.CustomerSortUpdatedAt:          "updated_at",
}

const defaultCustomerOrder = "ORDER BY display_name ASC, id ASC"

func addressCols(prefix string) []string {
	return []string{
		prefix + "_attention", prefix + "_country", prefix + "_address1", prefix + "_address2",
		prefix + "_city", prefix + "_state", prefix + "_pin_code", prefix + "_phone", prefix + "_fax",
	}
}

func addressArgs(prefix string, a entity.Address, args pgx.NamedArgs) {
	vals := []string{a.Attention, a.Country, a.Address1, a.Address2, a.City, a.State, a.PinCode, a.Phone, a.Fax}
	for i, col := range addressCols(prefix) {
		args[col] = vals[i]
	}
}

func addressDest(a *entity.Address) []any {
	return []any{&a.Attention, &a.Country, &a.Address1, &a.Address2, &a.City, &a.State, &a.PinCode, &a.Phone, &a.Fax}
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func customerArgs(c *entity.Customer) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"id":                  c.ID,
		"customer_type":       string(c.CustomerType),
		"salutation":          c.Salutation,
		"first_name":          c.FirstName,
		"last_name":           c.LastName,
		"company_name":        c.CompanyName,
		"display_name":        c.DisplayName,
		"email":               c.Email,
		"work_phone":          c.WorkPhone,
		"mobile_phone":        c.MobilePhone,
		"language":            c.Language,
		"pan":                 c.PAN,
		"currency":            c.Currency,
		"opening_balance":     c.OpeningBalance,
		"receivables_balance": c.ReceivablesBalance,
		"payment_terms":       c.PaymentTerms,
		"enable_portal":       c.EnablePortal,
		"remarks":             c.Remarks,
		"status":              c.Status,
		"active":              c.Active,
		"last_contact_at":     c.LastContactAt,
		"created_at":          c.CreatedAt,
		"updated_at":          c.UpdatedAt,
		"created_by":          c.CreatedBy,
		"updated_by":          c.UpdatedBy,
	}
	addressArgs("billing", c.Billing, args)
	addressArgs("shipping", c.Shipping, args)
	return args
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var ctype string
	dest := []any{
		&c.ID, &ctype, &c.Salutation, &c.FirstName, &c.LastName, &c.CompanyName,
		&c.DisplayName, &c.Email, &c.WorkPhone, &c.MobilePhone, &c.Language, &c.PAN, &c.Currency,
		&c.OpeningBalance, &c.ReceivablesBalance, &c.PaymentTerms, &c.EnablePortal,
	}
	dest = append(dest, addressDest(&c.Billing)...)
	dest = append(dest, addressDest(&c.Shipping)...)
	dest = append(dest,
		&c.Remarks, &c.Status, &c.Active, &c.LastContactAt,
		&c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	c.CustomerType = entity.CustomerType(ctype)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	if c.LastContactAt != nil {
		t := c.LastContactAt.UTC()
		c.LastContactAt = &t
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if _, err := r.q.Exec(ctx, insertSQL("customers", customerCols), customerArgs(customer)); err != nil {
		return domain.NewStoreError("customer.create", err)
	}
	return nil
}

// Update sobrescribe el registro completo salvo id y datos de creación.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	tag, err := r.q.Exec(ctx, updateSQL("customers", customerCols, "id", "created_at", "created_by"), customerArgs(customer))
	if err != nil {
		return domain.NewStoreError("customer.update", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return domain.NewStoreError("customer.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un cliente por ID, activo o no.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStoreError("customer.get", err)
	}
	return c, nil
}

func (r *CustomerRepo) page(ctx context.Context, op, where string, args pgx.NamedArgs, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	order := orderBy(customerSortColumns, req, "display_name")
	return page(ctx, r.q, op, "customers", customerColumns, where, args, order, req, scanCustomer)
}

func (r *CustomerRepo) list(ctx context.Context, op, where string, limit int) ([]*entity.Customer, error) {
	sql := "SELECT " + customerColumns + " FROM customers WHERE " + where + " " + defaultCustomerOrder + " LIMIT @limit"
	return collect(ctx, r.q, op, sql, pgx.NamedArgs{"limit": limit}, scanCustomer)
}

// ListActive clientes activos paginados.
func (r *CustomerRepo) ListActive(ctx context.Context, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	return r.page(ctx, "customer.list", "active", pgx.NamedArgs{}, req)
}

// ListAllActive clientes activos sin paginar, hasta limit filas.
func (r *CustomerRepo) ListAllActive(ctx context.Context, limit int) ([]*entity.Customer, error) {
	return r.list(ctx, "customer.list_all", "active", limit)
}

// ListActiveByType clientes activos de un tipo.
func (r *CustomerRepo) ListActiveByType(ctx context.Context, t entity.CustomerType, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	return r.page(ctx, "customer.list_by_type", "active AND customer_type = @type", pgx.NamedArgs{"type": string(t)}, req)
}

// SearchActive ILIKE sobre display name, email y empresa.
func (r *CustomerRepo) SearchActive(ctx context.Context, term string, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	where := `active AND (display_name ILIKE @term OR email ILIKE @term OR company_name ILIKE @term)`
	return r.page(ctx, "customer.search", where, pgx.NamedArgs{"term": likePattern(term)}, req)
}

// ListWithOutstandingBalance clientes activos con saldo por cobrar > 0.
func (r *CustomerRepo) ListWithOutstandingBalance(ctx context.Context, limit int) ([]*entity.Customer, error) {
	return r.list(ctx, "customer.outstanding", "active AND receivables_balance > 0", limit)
}

// ExistsActiveDisplayName unicidad del display name entre activos.
func (r *CustomerRepo) ExistsActiveDisplayName(ctx context.Context, displayName, excludeID string) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM customers WHERE active AND display_name = @name AND id <> @exclude)`
	return exists(ctx, r.q, "customer.exists_display_name", sql, pgx.NamedArgs{"name": displayName, "exclude": excludeID})
}

func (r *CustomerRepo) CountActive(ctx context.Context) (int64, error) {
	return count(ctx, r.q, "customer.count", `SELECT COUNT(*) FROM customers WHERE active`, pgx.NamedArgs{})
}

func (r *CustomerRepo) CountActiveByType(ctx context.Context, t entity.CustomerType) (int64, error) {
	return count(ctx, r.q, "customer.count_by_type",
		`SELECT COUNT(*) FROM customers WHERE active AND customer_type = @type`, pgx.NamedArgs{"type": string(t)})
}

func (r *CustomerRepo) CountWithOutstandingBalance(ctx context.Context) (int64, error) {
	return count(ctx, r.q, "customer.count_outstanding",
		`SELECT COUNT(*) FROM customers WHERE active AND receivables_balance > 0`, pgx.NamedArgs{})
}
