// Package ledger formats the evaluator's stdout stream (spec §6): one
// line per initial state and per successful confirmation advance, per
// rule.
package ledger

import (
	"fmt"
	"io"

	"github.com/watcheth/beaconledger/internal/types"
)

// Record is one LEDGER line: the state of a single RuleState as of slot
// t.
type Record struct {
	Slot  types.Slot
	Quorum float64
	Tip   types.Root
	TipSlot types.Slot
}

// Emit writes r to w in the form
//
//	LEDGER t=<slot> RuleState{q=<q>, tip=<root>, slot=<slot>}
func Emit(w io.Writer, r Record) error {
	_, err := fmt.Fprintf(w, "LEDGER t=%d RuleState{q=%g, tip=%s, slot=%d}\n",
		uint64(r.Slot), r.Quorum, r.Tip, uint64(r.TipSlot))
	return err
}
