package deadlock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/ossim/sim"
)

func decodeRequest(t *testing.T, raw string) Request {
	t.Helper()
	var req Request
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func TestDetectCycle_TwoProcessDeadlock(t *testing.T) {
	// GIVEN P1 holds R2 and wants R1, P2 holds R1 and wants R2
	req := decodeRequest(t, `{
		"processes": [
			{"id": "P1", "request": {"R1": 1}, "allocation": {"R2": 1}},
			{"id": "P2", "request": {"R2": 1}, "allocation": {"R1": 1}}
		],
		"resources": [{"id": "R1", "instances": 1}, {"id": "R2", "instances": 1}]
	}`)

	// WHEN
	res, err := DetectCycle(req)

	// THEN traversal starts at P1 and closes the loop at R2→P1
	require.NoError(t, err)
	assert.True(t, res.HasCycle)
	assert.Equal(t, []sim.PID{"P1", "R1", "P2", "R2"}, res.CycleNodes)
}

func TestDetectCycle_Acyclic(t *testing.T) {
	req := decodeRequest(t, `{
		"processes": [
			{"id": "P1", "request": {"R1": 1}},
			{"id": "P2", "allocation": {"R1": 1}, "request": {"R2": 0}}
		],
		"resources": [{"id": "R1", "instances": 1}, {"id": "R2", "instances": 1}]
	}`)

	res, err := DetectCycle(req)

	require.NoError(t, err)
	assert.False(t, res.HasCycle)
	assert.Empty(t, res.CycleNodes)
	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hasCycle": false, "cycleNodes": []}`, string(out))
}

func TestDetectCycle_ReportsLeadInPath(t *testing.T) {
	// GIVEN P0 waits on a resource inside the P1/P2 cycle
	req := decodeRequest(t, `{
		"processes": [
			{"id": "P0", "request": {"R1": 1}},
			{"id": "P1", "request": {"R2": 1}, "allocation": {"R1": 1}},
			{"id": "P2", "request": {"R1": 1}, "allocation": {"R2": 1}}
		],
		"resources": [{"id": "R1", "instances": 1}, {"id": "R2", "instances": 1}]
	}`)

	// WHEN
	res, err := DetectCycle(req)

	// THEN P0 is reported with the cycle it leads into
	require.NoError(t, err)
	assert.True(t, res.HasCycle)
	assert.Equal(t, []sim.PID{"P0", "R1", "P1", "R2", "P2"}, res.CycleNodes)
}

func TestDetectCycle_ProcessAndResourceShareID(t *testing.T) {
	// process 1 requesting resource 1 is an edge between two vertices, not a self-loop
	req := decodeRequest(t, `{
		"processes": [{"id": 1, "request": {"1": 1}}],
		"resources": [{"id": 1, "instances": 1}]
	}`)

	res, err := DetectCycle(req)

	require.NoError(t, err)
	assert.False(t, res.HasCycle)
}

func TestDetectCycle_InvalidRequest(t *testing.T) {
	res, err := DetectCycle(decodeRequest(t, `{"processes": [{"request": {"R1": 1}}]}`))

	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestBuildGraph_SkipsNonPositiveCounts(t *testing.T) {
	req := decodeRequest(t, `{"processes": [{"id": "P1", "request": {"R1": 0, "R2": 2}, "allocation": {"R3": -1}}]}`)

	g := BuildGraph(req.Processes)

	assert.Equal(t, []Node{{Kind: ResourceNode, ID: "R2"}}, g.Neighbors(Node{Kind: ProcessNode, ID: "P1"}))
	assert.Empty(t, g.Neighbors(Node{Kind: ResourceNode, ID: "R3"}))
}
