package domain

// EntryType partitions persisted timecard rows by source. Each partition has
// its own delete key, so a refresh of one never touches the other.
type EntryType string

const (
	EntryTimecard     EntryType = "timecard"
	EntryPlanVsActual EntryType = "plan_vs_actual"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTimecard, EntryPlanVsActual:
		return true
	}
	return false
}

// BacklogMarker is the literal value of the Backlog column that keeps a
// zero-hour plan row alive.
const BacklogMarker = "Backlog"

// DateLayout is the storage layout for calendar dates.
const DateLayout = "2006-01-02"
