package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
)

// Due urgency bands. Overdue dominates so an overdue task always outranks a
// non-overdue task of equal priority.
const (
	overdueBonus     = 200
	dueTodayBonus    = 150
	dueTomorrowBonus = 100
	dueDecayBase     = 50
	dueDecayPerDay   = 5

	timeOfDayBonus = 25

	highEnergyBonus     = 30
	lowEnergyBonus      = 20
	highEnergyThreshold = 70
	lowEnergyThreshold  = 40
)

// priorityWeights maps a task priority to its base score.
var priorityWeights = map[value_objects.Priority]int{
	value_objects.PriorityCritical: 100,
	value_objects.PriorityHigh:     75,
	value_objects.PriorityMedium:   50,
	value_objects.PriorityLow:      25,
}

// ScoredTask pairs a task with its computed score.
type ScoredTask struct {
	Task        *task.Task
	Score       int
	Explanation string
}

// PriorityEngine ranks tasks by an additive urgency score. The score is a
// pure function of the task, the current instant, and the caller-reported
// energy level (0-100).
type PriorityEngine struct{}

// NewPriorityEngine creates a new priority engine.
func NewPriorityEngine() *PriorityEngine {
	return &PriorityEngine{}
}

// Score computes the urgency score and a factor-by-factor explanation for a
// single task.
func (e *PriorityEngine) Score(t *task.Task, now time.Time, energyLevel int) (int, string) {
	priorityBase, ok := priorityWeights[t.Priority()]
	if !ok {
		priorityBase = priorityWeights[value_objects.PriorityLow]
	}

	due := e.dueScore(t.ReminderAt(), now)
	timeMatch := 0
	if t.TimeOfDay().Matches(now) {
		timeMatch = timeOfDayBonus
	}
	energy := e.energyScore(t.Priority(), energyLevel)

	score := priorityBase + due + timeMatch + energy
	explanation := fmt.Sprintf("priority=%d due=%d timeofday=%d energy=%d",
		priorityBase, due, timeMatch, energy)

	return score, explanation
}

// Rank scores every task and orders them best-first. Ties break on the
// earlier reminder, then the earlier creation time, then the ID, so the
// ordering is stable across calls.
func (e *PriorityEngine) Rank(tasks []*task.Task, now time.Time, energyLevel int) []ScoredTask {
	scored := make([]ScoredTask, len(tasks))
	for i, t := range tasks {
		score, explanation := e.Score(t, now, energyLevel)
		scored[i] = ScoredTask{Task: t, Score: score, Explanation: explanation}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ri, rj := scored[i].Task.ReminderAt(), scored[j].Task.ReminderAt()
		switch {
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		case ri != nil && rj != nil && !ri.Equal(*rj):
			return ri.Before(*rj)
		}
		if !scored[i].Task.CreatedAt().Equal(scored[j].Task.CreatedAt()) {
			return scored[i].Task.CreatedAt().Before(scored[j].Task.CreatedAt())
		}
		return scored[i].Task.ID().String() < scored[j].Task.ID().String()
	})

	return scored
}

// dueScore buckets the calendar-day distance between the due timestamp and
// now. Tasks without a due timestamp contribute nothing.
func (e *PriorityEngine) dueScore(due *time.Time, now time.Time) int {
	if due == nil {
		return 0
	}

	days := daysBetween(now, *due)
	switch {
	case days < 0:
		return overdueBonus
	case days == 0:
		return dueTodayBonus
	case days == 1:
		return dueTomorrowBonus
	default:
		decayed := dueDecayBase - dueDecayPerDay*days
		if decayed < 0 {
			return 0
		}
		return decayed
	}
}

// energyScore boosts hard tasks when the user reports high energy and easy
// tasks when energy is low.
func (e *PriorityEngine) energyScore(priority value_objects.Priority, energyLevel int) int {
	switch {
	case priority == value_objects.PriorityCritical && energyLevel > highEnergyThreshold:
		return highEnergyBonus
	case priority == value_objects.PriorityLow && energyLevel < lowEnergyThreshold:
		return lowEnergyBonus
	default:
		return 0
	}
}

// daysBetween counts whole calendar days from a to b, negative when b's date
// precedes a's. Both dates are read in a's location and re-anchored in UTC so
// a 23-hour DST day still counts as one day.
func daysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}
