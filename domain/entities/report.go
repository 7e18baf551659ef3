package entities

import "time"

// ScenarioStatus represents the outcome of a scenario run
type ScenarioStatus string

const (
	ScenarioPassed ScenarioStatus = "passed"
	ScenarioFailed ScenarioStatus = "failed"
)

// ScenarioResult represents one finished scenario
type ScenarioResult struct {
	Name       string         `json:"name"`
	Status     ScenarioStatus `json:"status"`
	Err        error          `json:"-"`
	Duration   time.Duration  `json:"duration"`
	Screenshot string         `json:"screenshot,omitempty"`
}

// Report represents a whole suite run
type Report struct {
	RunID    string           `json:"run_id"`
	Results  []ScenarioResult `json:"results"`
	Duration time.Duration    `json:"duration"`
}

// Failed - returns how many scenarios failed
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ScenarioFailed {
			n++
		}
	}
	return n
}

// Passed - reports whether every scenario passed
func (r *Report) Passed() bool {
	return r.Failed() == 0
}
