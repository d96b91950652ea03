// Package work contains the pure business rules for urban-works records:
// lifecycle stages, transition guards and the field invariants checked
// before every persist. No I/O, only pure functions.
package work

// Stage is a lifecycle phase of a work. Stage names double as the identity
// key of the stages lookup table, so they are stored accent-stripped like
// every other categorical value.
type Stage string

const (
	StageProject     Stage = "Proyecto"
	StageContracting Stage = "Licitacion"
	StageAwarded     Stage = "Adjudicada"
	StageExecution   Stage = "En Ejecucion"
	StageFinished    Stage = "Finalizada"
	StageRescinded   Stage = "Rescindida"
)

// IsTerminal reports whether a stage admits no further transitions.
func IsTerminal(s Stage) bool {
	return s == StageFinished || s == StageRescinded
}
