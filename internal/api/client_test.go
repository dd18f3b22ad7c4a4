package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watcheth/beaconledger/internal/ratelimit"
	"github.com/watcheth/beaconledger/internal/testutil"
	"github.com/watcheth/beaconledger/internal/types"
)

func newTestClient(t *testing.T, endpoints map[string]struct {
	Status int
	Body   string
}) *HTTPClient {
	t.Helper()
	server := testutil.HTTPTestServer(t, testutil.MockHTTPEndpoints(endpoints))
	return NewHTTPClient(server.URL, ratelimit.Unlimited{})
}

func TestBlockRootBySlotReturnsRoot(t *testing.T) {
	client := newTestClient(t, map[string]struct {
		Status int
		Body   string
	}{
		"/eth/v1/beacon/headers": {Status: http.StatusOK, Body: testutil.ValidHeadersResponse},
	})

	root, ok, err := client.BlockRootBySlot(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0x01", root.String()[:4])
}

func TestBlockRootBySlotEmptySlot(t *testing.T) {
	client := newTestClient(t, map[string]struct {
		Status int
		Body   string
	}{
		"/eth/v1/beacon/headers": {Status: http.StatusNotFound, Body: ""},
	})

	_, ok, err := client.BlockRootBySlot(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlockByRootParsesAttestations(t *testing.T) {
	root := types.Root{0x01}
	client := newTestClient(t, map[string]struct {
		Status int
		Body   string
	}{
		"/eth/v2/beacon/blocks/" + root.String(): {Status: http.StatusOK, Body: testutil.ValidBlockResponse},
	})

	blk, err := client.BlockByRoot(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, types.Slot(5), blk.Slot)
	assert.Equal(t, types.ValidatorIndex(12), blk.ProposerIndex)
	require.Len(t, blk.Attestations, 1)
	assert.Equal(t, types.Slot(4), blk.Attestations[0].SlotCommittee)
	assert.True(t, blk.Attestations[0].BitSet(0))
	assert.True(t, blk.Attestations[0].BitSet(1))
	assert.True(t, blk.Attestations[0].BitSet(2))
}

func TestStateRootBySlot(t *testing.T) {
	client := newTestClient(t, map[string]struct {
		Status int
		Body   string
	}{
		"/eth/v1/beacon/states/5/root": {Status: http.StatusOK, Body: testutil.ValidStateRootResponse},
	})

	root, err := client.StateRootBySlot(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "0x02", root.String()[:4])
}

func TestFinalityCheckpoints(t *testing.T) {
	client := newTestClient(t, map[string]struct {
		Status int
		Body   string
	}{
		"/eth/v1/beacon/states/5/finality_checkpoints": {Status: http.StatusOK, Body: testutil.ValidFinalityCheckpointsResponse},
	})

	fc, err := client.FinalityCheckpoints(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, types.Epoch(1), fc.CurrentJustified.Epoch)
	assert.True(t, fc.Finalized.Root.IsZero())
}

func TestCommittees(t *testing.T) {
	client := newTestClient(t, map[string]struct {
		Status int
		Body   string
	}{
		"/eth/v1/beacon/states/5/committees": {Status: http.StatusOK, Body: testutil.ValidCommitteesResponse},
	})

	committees, err := client.Committees(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, committees, 1)
	assert.Equal(t, []types.ValidatorIndex{1, 2, 3}, committees[0].Validators)
}

func TestDoGetRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := testutil.HTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(testutil.ValidStateRootResponse))
	})
	client := NewHTTPClient(server.URL, ratelimit.Unlimited{})

	root, err := client.StateRootBySlot(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.False(t, root.IsZero())
}

func TestDoGetDoesNotRetryOn4xx(t *testing.T) {
	attempts := 0
	server := testutil.HTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})
	client := NewHTTPClient(server.URL, ratelimit.Unlimited{})

	_, err := client.StateRootBySlot(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
