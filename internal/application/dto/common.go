package dto

import "github.com/jhoicas/maestros-api/internal/domain/repository"

// PageResponse página de resultados en respuestas.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// MapPage proyecta una página del dominio con la función de mapeo dada.
func MapPage[E any, T any](p repository.Page[E], fn func(E) T) PageResponse[T] {
	content := make([]T, 0, len(p.Content))
	for _, e := range p.Content {
		content = append(content, fn(e))
	}
	return PageResponse[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// MapList proyecta una lista sin paginar.
func MapList[E any, T any](list []E, fn func(E) T) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		out = append(out, fn(e))
	}
	return out
}

// ErrorResponse cuerpo de error HTTP. Field identifica el campo o valor ofensivo cuando aplica.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
