// Package rotation maps sector momentum phases to score bonuses. The phase
// ranking comes from an external sector-ETF momentum feed; symbols are mapped
// into it by sector-label keyword.
package rotation

import "strings"

// Phase is a sector's position in the money-flow cycle
type Phase string

const (
	PhaseInflow   Phase = "수급유입"
	PhaseTurning  Phase = "순환매기대"
	PhaseWatching Phase = "관심"
	PhaseOverheat Phase = "과열주의"
	PhaseCold     Phase = "소외지속"
	PhaseNeutral  Phase = "중립"
)

// Bonus returns the score adjustment for a phase
func (p Phase) Bonus() int {
	switch p {
	case PhaseInflow:
		return 5
	case PhaseTurning:
		return 7
	case PhaseWatching:
		return 2
	case PhaseOverheat:
		return -3
	case PhaseCold:
		return -5
	}
	return 0
}

// Entry is one sector's rotation state
type Entry struct {
	Bonus int    `json:"bonus"`
	Phase string `json:"phase"`
}

// Table is the batch-level sector rotation lookup. Built once before the
// scoring fan-out and read concurrently afterwards, so it must not be
// mutated after construction.
type Table struct {
	entries map[string]Entry
}

// NewTable builds a rotation table from a sector-label keyed map. A nil or
// empty map yields a table that resolves everything to neutral.
func NewTable(entries map[string]Entry) *Table {
	if entries == nil {
		entries = map[string]Entry{}
	}
	return &Table{entries: entries}
}

// FromPhases builds a table from phase tags, deriving bonuses
func FromPhases(phases map[string]Phase) *Table {
	entries := make(map[string]Entry, len(phases))
	for label, phase := range phases {
		entries[label] = Entry{Bonus: phase.Bonus(), Phase: string(phase)}
	}
	return NewTable(entries)
}

// Resolve finds the rotation entry for a scored sector label by keyword
// match, substring either direction. Unknown sectors are neutral.
func (t *Table) Resolve(sectorLabel string) Entry {
	if sectorLabel == "" {
		return Entry{Phase: string(PhaseNeutral)}
	}
	if e, ok := t.entries[sectorLabel]; ok {
		return e
	}
	for key, e := range t.entries {
		if strings.Contains(sectorLabel, key) || strings.Contains(key, sectorLabel) {
			return e
		}
	}
	return Entry{Phase: string(PhaseNeutral)}
}
