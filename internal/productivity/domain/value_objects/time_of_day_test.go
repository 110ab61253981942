package value_objects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodOf(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("morning is before noon", func(t *testing.T) {
		assert.Equal(t, TimeOfDayMorning, PeriodOf(day.Add(0*time.Hour)))
		assert.Equal(t, TimeOfDayMorning, PeriodOf(day.Add(11*time.Hour+59*time.Minute)))
	})

	t.Run("afternoon is noon through 16:59", func(t *testing.T) {
		assert.Equal(t, TimeOfDayAfternoon, PeriodOf(day.Add(12*time.Hour)))
		assert.Equal(t, TimeOfDayAfternoon, PeriodOf(day.Add(16*time.Hour+59*time.Minute)))
	})

	t.Run("evening starts at 17:00", func(t *testing.T) {
		assert.Equal(t, TimeOfDayEvening, PeriodOf(day.Add(17*time.Hour)))
		assert.Equal(t, TimeOfDayEvening, PeriodOf(day.Add(23*time.Hour)))
	})
}

func TestTimeOfDay_Matches(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, TimeOfDayMorning.Matches(morning))
	assert.False(t, TimeOfDayEvening.Matches(morning))
	assert.False(t, TimeOfDayAny.Matches(morning))
}

func TestParseTimeOfDay(t *testing.T) {
	t.Run("parses known periods", func(t *testing.T) {
		got, err := ParseTimeOfDay("Evening")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDayEvening, got)
	})

	t.Run("empty string means any", func(t *testing.T) {
		got, err := ParseTimeOfDay("")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDayAny, got)
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		_, err := ParseTimeOfDay("midnight")
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	})
}
