package domain

// Priority is the user-selected optimization goal.
type Priority string

const (
	PriorityCost     Priority = "cost"
	PrioritySpeed    Priority = "speed"
	PriorityCarbon   Priority = "carbon"
	PriorityBalanced Priority = "balanced"
)

// Weights are the scoring coefficients for one priority. They sum to 1.
type Weights struct {
	Cost      float64
	Time      float64
	Emissions float64
}

var priorityWeights = map[Priority]Weights{
	PriorityCost:     {Cost: 0.70, Time: 0.15, Emissions: 0.15},
	PrioritySpeed:    {Cost: 0.15, Time: 0.70, Emissions: 0.15},
	PriorityCarbon:   {Cost: 0.15, Time: 0.15, Emissions: 0.70},
	PriorityBalanced: {Cost: 0.33, Time: 0.33, Emissions: 0.34},
}

// Weights returns the weight triple for the priority. The second return is
// false for any value outside the four supported priorities.
func (p Priority) Weights() (Weights, bool) {
	w, ok := priorityWeights[p]
	return w, ok
}
