// Package lifecycle reúne lo que comparten los servicios de ciclo de vida de
// clientes y artículos: reloj de auditoría, normalización de páginas y métricas.
package lifecycle

import (
	"sync"
	"time"
)

// Clock fuente de tiempo inyectable para los campos de auditoría.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj real en UTC.
type SystemClock struct{}

// Now devuelve la hora actual en UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// StepClock reloj determinista: cada llamada devuelve el instante actual y avanza Step.
// Pensado para tests.
type StepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

// NewStepClock crea un StepClock que arranca en start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{t: start, step: step}
}

// Now devuelve el instante actual y avanza el reloj.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// Set fija el próximo instante devuelto.
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// Stamp hora del reloj con precisión de microsegundos (la de PostgreSQL).
func Stamp(clock Clock) time.Time {
	return clock.Now().UTC().Truncate(time.Microsecond)
}

// Touch devuelve el nuevo UpdatedAt: estrictamente posterior a prev aunque el reloj no avance.
func Touch(clock Clock, prev time.Time) time.Time {
	t := Stamp(clock)
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
