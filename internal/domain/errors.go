package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStore              = errors.New("fallo de persistencia")
)

// ValidationError campo ausente, mal formado o fuera de rango. Siempre corregible por el cliente.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConflictError violación de unicidad: el cliente debe cambiar el valor en colisión.
type ConflictError struct {
	Field   string
	Value   string
	Message string
}

// NewConflictError construye un ConflictError.
func NewConflictError(field, value, message string) *ConflictError {
	return &ConflictError{Field: field, Value: value, Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message + " (" + e.Field + "=" + e.Value + ")"
}

// Is permite errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NotFoundError el id no resuelve a ningún registro (incluye ids purgados).
// El mensaje es genérico: no distingue "nunca existió" de "fue purgado".
type NotFoundError struct {
	Resource string
}

// NewNotFoundError construye un NotFoundError para el recurso indicado.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return ErrNotFound.Error()
	}
	return e.Resource + " no encontrado"
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StoreError fallo del almacenamiento subyacente. Se propaga sin reintentos.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError envuelve un error del driver con la operación que falló.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStore).
func (e *StoreError) Is(target error) bool { return target == ErrStore }
