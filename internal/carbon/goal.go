package carbon

import "math"

// ProgressPercent reports how far total is below goal as a percentage in
// [0, 100]. A goal of zero or less yields 0.
func ProgressPercent(total, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, math.Max(0, (1-total/goal)*100))
}

// RemainingToGoal returns the reduction still needed to reach goal.
// A negative value means the goal is already met.
func RemainingToGoal(total, goal float64) float64 {
	return total - goal
}

// GoalMet reports whether total is at or below a positive goal.
func GoalMet(total, goal float64) bool {
	return goal > 0 && RemainingToGoal(total, goal) <= 0
}
