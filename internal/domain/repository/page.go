package repository

// SortDirection dirección de ordenamiento.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// PageRequest página ya normalizada por la capa de aplicación.
// SortBy es un campo de la lista blanca de la entidad (ver CustomerSortField / ItemSortField).
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDirection
}

// Offset desplazamiento en filas.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page resultado paginado.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage arma la página calculando el total de páginas.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
