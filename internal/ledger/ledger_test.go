package ledger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watcheth/beaconledger/internal/types"
)

func TestEmitFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	root := types.Root{0xab}

	err := Emit(&buf, Record{Slot: 32, Quorum: 0.67, Tip: root, TipSlot: 32})
	require.NoError(t, err)

	assert.Equal(t, "LEDGER t=32 RuleState{q=0.67, tip="+root.String()+", slot=32}\n", buf.String())
}

func TestEmitGenesisRecord(t *testing.T) {
	var buf bytes.Buffer

	err := Emit(&buf, Record{Slot: 0, Quorum: 0.51, Tip: types.Root{}, TipSlot: 0})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "LEDGER t=0 RuleState{q=0.51")
}
