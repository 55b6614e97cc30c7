package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Los nulos van al final en ASC y al principio en DESC, igual que PostgreSQL.
// El desempate siempre es por id ascendente.

func compareNullDecimal(a, b decimal.NullDecimal) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	return a.Decimal.Cmp(b.Decimal)
}

func compareTime(a, b time.Time) int { return a.Compare(b) }

func customerKey(sortBy string) func(a, b *entity.Customer) int {
	switch sortBy {
	case repository.CustomerSortID:
		return func(a, b *entity.Customer) int { return strings.Compare(a.ID, b.ID) }
	case repository.CustomerSortCompanyName:
		return func(a, b *entity.Customer) int { return strings.Compare(a.CompanyName, b.CompanyName) }
	case repository.CustomerSortEmail:
		return func(a, b *entity.Customer) int { return strings.Compare(a.Email, b.Email) }
	case repository.CustomerSortCustomerType:
		return func(a, b *entity.Customer) int { return cmp.Compare(a.CustomerType, b.CustomerType) }
	case repository.CustomerSortReceivablesBalance:
		return func(a, b *entity.Customer) int { return a.ReceivablesBalance.Cmp(b.ReceivablesBalance) }
	case repository.CustomerSortCreatedAt:
		return func(a, b *entity.Customer) int { return compareTime(a.CreatedAt, b.CreatedAt) }
	case repository.CustomerSortUpdatedAt:
		return func(a, b *entity.Customer) int { return compareTime(a.UpdatedAt, b.UpdatedAt) }
	default:
		return func(a, b *entity.Customer) int { return strings.Compare(a.DisplayName, b.DisplayName) }
	}
}

func itemKey(sortBy string) func(a, b *entity.Item) int {
	switch sortBy {
	case repository.ItemSortID:
		return func(a, b *entity.Item) int { return strings.Compare(a.ID, b.ID) }
	case repository.ItemSortSKU:
		return func(a, b *entity.Item) int { return compareSKU(a.SKU, b.SKU) }
	case repository.ItemSortType:
		return func(a, b *entity.Item) int { return cmp.Compare(a.Type, b.Type) }
	case repository.ItemSortSellingPrice:
		return func(a, b *entity.Item) int { return compareNullDecimal(a.SellingPrice, b.SellingPrice) }
	case repository.ItemSortCostPrice:
		return func(a, b *entity.Item) int { return compareNullDecimal(a.CostPrice, b.CostPrice) }
	case repository.ItemSortStockQuantity:
		return func(a, b *entity.Item) int { return compareNullDecimal(a.StockQuantity, b.StockQuantity) }
	case repository.ItemSortCreatedAt:
		return func(a, b *entity.Item) int { return compareTime(a.CreatedAt, b.CreatedAt) }
	case repository.ItemSortUpdatedAt:
		return func(a, b *entity.Item) int { return compareTime(a.UpdatedAt, b.UpdatedAt) }
	default:
		return func(a, b *entity.Item) int { return strings.Compare(a.Name, b.Name) }
	}
}

// compareSKU un SKU vacío se guarda como NULL en PostgreSQL.
func compareSKU(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}

func sortCustomers(list []*entity.Customer, req repository.PageRequest) {
	key := customerKey(req.SortBy)
	slices.SortStableFunc(list, func(a, b *entity.Customer) int {
		c := key(a, b)
		if req.SortDir == repository.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func sortItems(list []*entity.Item, req repository.PageRequest) {
	key := itemKey(req.SortBy)
	slices.SortStableFunc(list, func(a, b *entity.Item) int {
		c := key(a, b)
		if req.SortDir == repository.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
