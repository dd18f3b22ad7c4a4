package evaluator

import (
	"math/big"
	"strconv"

	"github.com/watcheth/beaconledger/internal/types"
)

// committeeKey identifies a CommitteeAssignment by (slot, index), the
// lookup attestations use to find their voter set (spec §4.5 step 3).
type committeeKey struct {
	slot  types.Slot
	index types.CommitteeIndex
}

// indexCommittees builds the (slot, index) lookup table used by
// countVotesForConfirmation.
func indexCommittees(committees []types.CommitteeAssignment) map[committeeKey]types.CommitteeAssignment {
	m := make(map[committeeKey]types.CommitteeAssignment, len(committees))
	for _, c := range committees {
		m[committeeKey{slot: c.Slot, index: c.Index}] = c
	}
	return m
}

// countVotesForConfirmation implements the predicate of spec §4.5: it
// unions, across blks, the distinct validators who attested to
// targetRoot from a slot_committee in [slotPrev, slotCurrent), then
// compares that union's size against quorum·totalValidators using exact
// rational arithmetic so the threshold never suffers float64 boundary
// error. The quorum threshold is rounded UP (ceil), per spec §9 Open
// Question 3.
func countVotesForConfirmation(
	slotPrev, slotCurrent types.Slot,
	targetRoot types.Root,
	committees []types.CommitteeAssignment,
	blks []*types.Block,
	quorum float64,
) bool {
	byKey := indexCommittees(committees)

	total := 0
	for _, c := range committees {
		total += len(c.Validators)
	}

	voters := make(map[types.ValidatorIndex]struct{})
	for _, blk := range blks {
		for _, a := range blk.Attestations {
			if a.Target.Root != targetRoot {
				continue
			}
			if a.SlotCommittee < slotPrev || a.SlotCommittee >= slotCurrent {
				continue
			}
			committee, ok := byKey[committeeKey{slot: a.SlotCommittee, index: a.CommitteeIndex}]
			if !ok {
				continue
			}
			for i, v := range committee.Validators {
				if a.BitSet(i) {
					voters[v] = struct{}{}
				}
			}
		}
	}

	return meetsQuorum(len(voters), total, quorum)
}

// meetsQuorum reports whether votes ≥ ceil(quorum · total), computed
// exactly over rationals so no quorum boundary (e.g. exactly 2/3) is
// misjudged by float64 rounding.
func meetsQuorum(votes, total int, quorum float64) bool {
	if total == 0 {
		return false
	}
	// Take the quorum at its shortest decimal form (0.51 → 51/100), not
	// at its binary float64 value, which lies slightly off the decimal.
	q, ok := new(big.Rat).SetString(strconv.FormatFloat(quorum, 'g', -1, 64))
	if !ok {
		return false
	}
	threshold := new(big.Rat).Mul(q, big.NewRat(int64(total), 1))
	// ceil(threshold): integer division rounded toward +inf.
	num := threshold.Num()
	den := threshold.Denom()
	ceil := new(big.Int).Div(num, den)
	if new(big.Int).Mul(ceil, den).Cmp(num) != 0 {
		ceil.Add(ceil, big.NewInt(1))
	}
	return big.NewInt(int64(votes)).Cmp(ceil) >= 0
}
