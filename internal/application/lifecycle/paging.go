package lifecycle

import (
	"math"
	"strings"

	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// DefaultMaxUnpaginated tope de filas para los listados sin paginar.
	DefaultMaxUnpaginated = 1000
)

// PageQuery parámetros de página tal como llegan del cliente.
type PageQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// ParseSortDirection asc/desc sin distinguir mayúsculas; cualquier otro valor es asc.
func ParseSortDirection(s string) repository.SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return repository.SortDesc
	}
	return repository.SortAsc
}

// NormalizePage aplica valores por defecto y topes, y valida SortBy contra la lista blanca.
// Un SortBy vacío usa defaultSort; uno desconocido es un ValidationError.
// Page se acota para que Page*Size no desborde int.
func NormalizePage(q PageQuery, allowed map[string]bool, defaultSort string) (repository.PageRequest, error) {
	page := q.Page
	if page < 0 {
		page = 0
	}
	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}
	sortBy := strings.TrimSpace(q.SortBy)
	if sortBy == "" {
		sortBy = defaultSort
	}
	if !allowed[sortBy] {
		return repository.PageRequest{}, domain.NewValidationError("sortBy", "campo de ordenamiento no soportado: "+sortBy)
	}
	return repository.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  sortBy,
		SortDir: ParseSortDirection(q.SortDir),
	}, nil
}

// UnpaginatedLimit devuelve el tope configurado o el valor por defecto.
func UnpaginatedLimit(n int) int {
	if n <= 0 {
		return DefaultMaxUnpaginated
	}
	return n
}
