package carbon

import "time"

// Snapshot is the derived, read-only view of a ledger used by dashboards,
// reports and notifications.
type Snapshot struct {
	Records         []Record     `json:"records"`
	Total           float64      `json:"total"`
	Goal            float64      `json:"goal"`
	ProgressPercent float64      `json:"progress_percent"`
	RemainingToGoal float64      `json:"remaining_to_goal"`
	GoalMet         bool         `json:"goal_met"`
	Chart           []ChartPoint `json:"chart"`
	Recommendations []Advice     `json:"recommendations"`
	GeneratedAt     time.Time    `json:"generated_at"`
}

// TakeSnapshot derives a Snapshot from l against goal.
func TakeSnapshot(l *Ledger, goal float64, now time.Time) Snapshot {
	records := l.Records()
	total := l.Total()
	return Snapshot{
		Records:         records,
		Total:           total,
		Goal:            goal,
		ProgressPercent: ProgressPercent(total, goal),
		RemainingToGoal: RemainingToGoal(total, goal),
		GoalMet:         GoalMet(total, goal),
		Chart:           l.ChartProjection(),
		Recommendations: Recommend(records),
		GeneratedAt:     now,
	}
}
