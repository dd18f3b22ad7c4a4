package evaluator

import "github.com/watcheth/beaconledger/internal/types"

// RuleState is one configured confirmation rule (spec §3): a quorum
// fraction and the tip it has advanced to so far. The evaluator loop
// (spec §9 re-architecture point "rule polymorphism") only ever reads
// Quorum and writes Tip/TipSlot through Advance; it never branches on
// anything else about a rule.
type RuleState struct {
	Quorum  float64
	Tip     types.Root
	TipSlot types.Slot
}

// NewRuleState instantiates a rule at its genesis tip (spec §4.4
// Initialization).
func NewRuleState(quorum float64) *RuleState {
	return &RuleState{
		Quorum:  quorum,
		Tip:     types.GenesisRoot,
		TipSlot: 0,
	}
}

// Advance moves the rule's tip forward. Callers must have already
// checked rule monotonicity (spec §4.4 step 9b) before calling this.
func (r *RuleState) Advance(tip types.Root, tipSlot types.Slot) {
	r.Tip = tip
	r.TipSlot = tipSlot
}
