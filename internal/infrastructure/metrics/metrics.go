// Package metrics expone métricas Prometheus de las operaciones de ciclo de vida.
package metrics

import (
	"errors"
	"time"

	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ lifecycle.Recorder = (*Metrics)(nil)

// Metrics contadores y latencias por entidad, operación y resultado.
type Metrics struct {
	Operations *prometheus.CounterVec
	Latency    *prometheus.HistogramVec
}

// New registra las métricas en reg. Con nil usa el registro por defecto.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "maestros_operations_total",
			Help: "Total de operaciones de ciclo de vida por entidad, operación y resultado",
		}, []string{"entity", "op", "outcome"}),

		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maestros_operation_duration_seconds",
			Help:    "Duración de las operaciones de ciclo de vida",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"entity", "op"}),
	}
}

// ObserveOperation registra una operación terminada.
func (m *Metrics) ObserveOperation(entity, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(entity, op, Outcome(err)).Inc()
	m.Latency.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

// Outcome etiqueta del resultado según la clase de error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
