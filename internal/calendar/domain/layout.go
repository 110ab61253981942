package domain

import (
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
)

const minutesPerDay = 24 * 60

// BlockPosition places a time block on a proportional 24-hour vertical axis.
// Top and Height are percentages of the day column.
type BlockPosition struct {
	TopPercent    float64
	HeightPercent float64
}

// PositionInDay computes where a scheduled task renders within a day column.
// It returns false for tasks that do not occupy calendar time.
func PositionInDay(t *task.Task, dayStart time.Time) (BlockPosition, bool) {
	if !t.OccupiesTime() {
		return BlockPosition{}, false
	}

	offset := t.ScheduledAt().Sub(dayStart).Minutes()
	length := t.ScheduledEndAt().Sub(*t.ScheduledAt()).Minutes()

	return BlockPosition{
		TopPercent:    offset / minutesPerDay * 100,
		HeightPercent: length / minutesPerDay * 100,
	}, true
}
