package ports

import "time"

type GenerationMetrics interface {
	RecordSuccess(template string, elapsed time.Duration)
	RecordFailure(reason string)
}
