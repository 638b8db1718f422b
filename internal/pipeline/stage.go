// Package pipeline turns one employee's weekly workbook tables into the rows
// persisted for that employee and week.
package pipeline

// Stage names a step a file passes through on its way to the store.
type Stage string

const (
	StageLoaded   Stage = "loaded"
	StageReshaped Stage = "reshaped"
	StageFiltered Stage = "filtered"
	StageResolved Stage = "resolved"
	StageEmitted  Stage = "emitted"
	StageError    Stage = "error"
)

// StageCount records how many rows were alive after a step.
type StageCount struct {
	Stage Stage
	Step  string
	Rows  int
}

// Trace is the ordered list of steps a file went through.
type Trace []StageCount

func (t *Trace) add(stage Stage, step string, rows int) {
	*t = append(*t, StageCount{Stage: stage, Step: step, Rows: rows})
}
