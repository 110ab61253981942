package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_RecordsOnStop(t *testing.T) {
	m := NewInMemoryMetrics()

	d := StartTimer("demo").WithMetrics(m).WithTags(T("driver", "sqlite")).Stop()

	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Len(t, m.GetTimings(MetricOperationDuration, T("driver", "sqlite"), T("operation", "demo")), 1)
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, T("driver", "sqlite"), T("operation", "demo")))
}

func TestTimer_NoRecorderJustMeasures(t *testing.T) {
	d := StartTimer("demo").Stop()
	assert.GreaterOrEqual(t, d, time.Duration(0))
}
