// Package types holds the primitive and entity types of the beacon chain
// data model (Slot, Epoch, Root, Block, Checkpoint, CommitteeAssignment).
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// Slot, Epoch, ValidatorIndex and CommitteeIndex reuse go-eth2-client's
// primitive consensus types rather than re-declaring them.
type (
	Slot           = phase0.Slot
	Epoch          = phase0.Epoch
	ValidatorIndex = phase0.ValidatorIndex
	CommitteeIndex = phase0.CommitteeIndex
)

// Root is a 32-byte block or state identifier, rendered as a 0x-prefixed
// lowercase hex string wherever it crosses a JSON or store boundary.
type Root [32]byte

// ZeroRoot is the all-zero sentinel meaning "no finalized checkpoint yet".
var ZeroRoot Root

// GenesisRoot is the distinguished root identifying the genesis block
// (spec §3, "HEADER_GENESIS_ROOT"). The archiver never fetches a literal
// genesis block from the consensus API, so both the archiver's chain
// construction and the evaluator's tip resolution treat this sentinel
// specially rather than looking it up as an ordinary archived block.
var GenesisRoot Root

// IsZero reports whether r is the all-zero sentinel root.
func (r Root) IsZero() bool {
	return r == ZeroRoot
}

// String renders r as a 0x-prefixed lowercase hex string.
func (r Root) String() string {
	return "0x" + hex.EncodeToString(r[:])
}

// RootFromHex parses a 0x-prefixed (or bare) hex string into a Root.
func RootFromHex(s string) (Root, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	var r Root
	b, err := hex.DecodeString(s)
	if err != nil {
		return r, fmt.Errorf("invalid root %q: %w", s, err)
	}
	if len(b) != len(r) {
		return r, fmt.Errorf("invalid root %q: want %d bytes, got %d", s, len(r), len(b))
	}
	copy(r[:], b)
	return r, nil
}

// MarshalJSON renders the root the way the store and the ledger expect it.
func (r Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON parses a root back from its hex-string form.
func (r *Root) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := RootFromHex(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Checkpoint identifies a justification/finalization target.
type Checkpoint struct {
	Epoch Epoch `json:"epoch"`
	Root  Root  `json:"root"`
}

// Attestation is a signed committee vote over a target checkpoint, as
// carried by a Block. AggregationBitfield names which positional members
// of the (SlotCommittee, CommitteeIndex) committee signed; bit i
// corresponds to CommitteeAssignment.Validators[i].
type Attestation struct {
	SlotCommittee       Slot           `json:"slot_committee"`
	CommitteeIndex      CommitteeIndex `json:"committee_index"`
	AggregationBitfield []byte         `json:"aggregation_bitfield"`
	Target              Checkpoint     `json:"target"`
}

// BitSet reports whether position i is set in the attestation's
// aggregation bitfield.
func (a Attestation) BitSet(i int) bool {
	byteIdx := i / 8
	if byteIdx < 0 || byteIdx >= len(a.AggregationBitfield) {
		return false
	}
	return a.AggregationBitfield[byteIdx]&(1<<uint(i%8)) != 0
}

// Block is a canonical beacon block as archived.
type Block struct {
	Slot          Slot          `json:"slot"`
	ProposerIndex ValidatorIndex `json:"proposer_index"`
	ParentRoot    Root          `json:"parent_root"`
	StateRoot     Root          `json:"state_root"`
	Attestations  []Attestation `json:"attestations"`
}

// CommitteeAssignment names the ordered validator set assigned to a given
// (slot, index); position i refers to position i in a matching
// Attestation's aggregation bitfield.
type CommitteeAssignment struct {
	Slot       Slot             `json:"slot"`
	Index      CommitteeIndex   `json:"index"`
	Validators []ValidatorIndex `json:"validators"`
}

// FinalityCheckpoints is the triple of checkpoints reported for a beacon
// state: the previous-justified, current-justified and finalized targets.
type FinalityCheckpoints struct {
	PreviousJustified Checkpoint `json:"previous_justified"`
	CurrentJustified  Checkpoint `json:"current_justified"`
	Finalized         Checkpoint `json:"finalized"`
}
