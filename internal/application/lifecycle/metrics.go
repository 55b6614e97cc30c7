package lifecycle

import "time"

// Recorder puerto de métricas de las operaciones de ciclo de vida.
// Lo implementa internal/infrastructure/metrics.
type Recorder interface {
	ObserveOperation(entity, op string, start time.Time, err error)
}

// NopRecorder no registra nada.
type NopRecorder struct{}

// ObserveOperation no hace nada.
func (NopRecorder) ObserveOperation(string, string, time.Time, error) {}
