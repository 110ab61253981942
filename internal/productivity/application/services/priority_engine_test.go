package services

import (
	"testing"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTask(t *testing.T, title string, priority value_objects.Priority, due *time.Time, tod value_objects.TimeOfDay) *task.Task {
	t.Helper()
	tk, err := task.NewTask(uuid.New(), title)
	require.NoError(t, err)
	tk.SetPriority(priority)
	tk.SetTimeOfDay(tod)
	if due != nil {
		tk.SetReminder(due)
	}
	return tk
}

func TestPriorityEngine_Score(t *testing.T) {
	engine := NewPriorityEngine()
	// A Wednesday morning.
	now := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)

	t.Run("score is the sum of all four factors", func(t *testing.T) {
		dueToday := now.Add(4 * time.Hour)
		tk := makeTask(t, "Critical morning task", value_objects.PriorityCritical, &dueToday, value_objects.TimeOfDayMorning)

		score, explanation := engine.Score(tk, now, 80)

		assert.Equal(t, 305, score, "100 priority + 150 due today + 25 time match + 30 energy")
		assert.Equal(t, "priority=100 due=150 timeofday=25 energy=30", explanation)
	})

	t.Run("priority weights", func(t *testing.T) {
		tests := []struct {
			priority value_objects.Priority
			want     int
		}{
			{value_objects.PriorityCritical, 100},
			{value_objects.PriorityHigh, 75},
			{value_objects.PriorityMedium, 50},
			{value_objects.PriorityLow, 25},
		}
		for _, tt := range tests {
			tk := makeTask(t, "Task", tt.priority, nil, value_objects.TimeOfDayAny)
			score, _ := engine.Score(tk, now, 50)
			assert.Equal(t, tt.want, score, tt.priority.String())
		}
	})

	t.Run("due urgency bands", func(t *testing.T) {
		overdue := now.Add(-48 * time.Hour)
		today := now.Add(2 * time.Hour)
		tomorrow := now.AddDate(0, 0, 1)
		inFive := now.AddDate(0, 0, 5)
		inTen := now.AddDate(0, 0, 10)
		inTwenty := now.AddDate(0, 0, 20)

		tests := []struct {
			name string
			due  *time.Time
			want int
		}{
			{"overdue", &overdue, 200},
			{"due today", &today, 150},
			{"due tomorrow", &tomorrow, 100},
			{"due in five days decays linearly", &inFive, 25},
			{"due in ten days reaches zero", &inTen, 0},
			{"far future never goes negative", &inTwenty, 0},
			{"no due date", nil, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tk := makeTask(t, "Task", value_objects.PriorityMedium, tt.due, value_objects.TimeOfDayAny)
				score, _ := engine.Score(tk, now, 50)
				assert.Equal(t, 50+tt.want, score)
			})
		}
	})

	t.Run("overdue by minutes on a prior day still counts as overdue", func(t *testing.T) {
		lateYesterday := time.Date(2026, time.March, 10, 23, 55, 0, 0, time.UTC)
		tk := makeTask(t, "Task", value_objects.PriorityMedium, &lateYesterday, value_objects.TimeOfDayAny)

		score, _ := engine.Score(tk, now, 50)

		assert.Equal(t, 50+200, score)
	})

	t.Run("due tomorrow across a spring-forward day", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// DST starts 2026-03-08 in New York; the day is only 23 hours long.
		dstNow := time.Date(2026, time.March, 8, 12, 0, 0, 0, loc)
		tomorrow := time.Date(2026, time.March, 9, 12, 0, 0, 0, loc)
		tk := makeTask(t, "Task", value_objects.PriorityLow, &tomorrow, value_objects.TimeOfDayAny)

		score, _ := engine.Score(tk, dstNow, 50)

		assert.Equal(t, 25+100, score, "one calendar day ahead is due tomorrow, not due today")
	})

	t.Run("time of day match", func(t *testing.T) {
		evening := time.Date(2026, time.March, 11, 19, 0, 0, 0, time.UTC)

		morningTask := makeTask(t, "Morning", value_objects.PriorityMedium, nil, value_objects.TimeOfDayMorning)
		eveningTask := makeTask(t, "Evening", value_objects.PriorityMedium, nil, value_objects.TimeOfDayEvening)
		anytimeTask := makeTask(t, "Anytime", value_objects.PriorityMedium, nil, value_objects.TimeOfDayAny)

		score, _ := engine.Score(morningTask, now, 50)
		assert.Equal(t, 75, score, "morning task at 09:00 matches")

		score, _ = engine.Score(morningTask, evening, 50)
		assert.Equal(t, 50, score, "morning task at 19:00 does not match")

		score, _ = engine.Score(eveningTask, evening, 50)
		assert.Equal(t, 75, score)

		score, _ = engine.Score(anytimeTask, now, 50)
		assert.Equal(t, 50, score, "anytime never earns the bonus")
	})

	t.Run("energy alignment", func(t *testing.T) {
		critical := makeTask(t, "Critical", value_objects.PriorityCritical, nil, value_objects.TimeOfDayAny)
		low := makeTask(t, "Low", value_objects.PriorityLow, nil, value_objects.TimeOfDayAny)
		medium := makeTask(t, "Medium", value_objects.PriorityMedium, nil, value_objects.TimeOfDayAny)

		score, _ := engine.Score(critical, now, 80)
		assert.Equal(t, 130, score, "critical at high energy")

		score, _ = engine.Score(critical, now, 70)
		assert.Equal(t, 100, score, "threshold is exclusive")

		score, _ = engine.Score(low, now, 30)
		assert.Equal(t, 45, score, "low priority at low energy")

		score, _ = engine.Score(low, now, 40)
		assert.Equal(t, 25, score, "threshold is exclusive")

		score, _ = engine.Score(medium, now, 95)
		assert.Equal(t, 50, score, "medium never gets an energy bonus")
	})
}

func TestPriorityEngine_Rank(t *testing.T) {
	engine := NewPriorityEngine()
	// 09:00, morning.
	now := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)

	t.Run("low morning task versus critical due in three days", func(t *testing.T) {
		taskA := makeTask(t, "A", value_objects.PriorityLow, nil, value_objects.TimeOfDayMorning)
		inThree := now.AddDate(0, 0, 3)
		taskB := makeTask(t, "B", value_objects.PriorityCritical, &inThree, value_objects.TimeOfDayEvening)

		ranked := engine.Rank([]*task.Task{taskA, taskB}, now, 80)

		require.Len(t, ranked, 2)
		assert.Equal(t, "B", ranked[0].Task.Title())
		assert.Equal(t, 165, ranked[0].Score, "100 + 35 decayed due + 0 time + 30 energy")
		assert.Equal(t, "A", ranked[1].Task.Title())
		assert.Equal(t, 50, ranked[1].Score, "25 + 0 + 25 time match + 0")
	})

	t.Run("overdue outranks non-overdue at equal priority", func(t *testing.T) {
		overdueAt := now.AddDate(0, 0, -1)
		farOut := now.AddDate(0, 0, 8)

		overdue := makeTask(t, "Overdue", value_objects.PriorityMedium, &overdueAt, value_objects.TimeOfDayAny)
		upcoming := makeTask(t, "Upcoming", value_objects.PriorityMedium, &farOut, value_objects.TimeOfDayAny)

		ranked := engine.Rank([]*task.Task{upcoming, overdue}, now, 50)

		assert.Equal(t, "Overdue", ranked[0].Task.Title())
	})

	t.Run("ties break on the earlier reminder", func(t *testing.T) {
		sooner := now.Add(2 * time.Hour)
		later := now.Add(5 * time.Hour)

		first := makeTask(t, "Sooner", value_objects.PriorityMedium, &sooner, value_objects.TimeOfDayAny)
		second := makeTask(t, "Later", value_objects.PriorityMedium, &later, value_objects.TimeOfDayAny)

		ranked := engine.Rank([]*task.Task{second, first}, now, 50)

		assert.Equal(t, "Sooner", ranked[0].Task.Title())
		assert.Equal(t, ranked[0].Score, ranked[1].Score, "both are due today")
	})

	t.Run("ranking is deterministic across shuffled input", func(t *testing.T) {
		var tasks []*task.Task
		for i := 0; i < 5; i++ {
			tasks = append(tasks, makeTask(t, "Same", value_objects.PriorityMedium, nil, value_objects.TimeOfDayAny))
		}

		first := engine.Rank(tasks, now, 50)
		reversed := []*task.Task{tasks[4], tasks[3], tasks[2], tasks[1], tasks[0]}
		second := engine.Rank(reversed, now, 50)

		for i := range first {
			assert.Equal(t, first[i].Task.ID(), second[i].Task.ID(), "position %d", i)
		}
	})
}
