package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/ossim/sim"
	"github.com/inference-sim/ossim/sim/deadlock"
	"github.com/inference-sim/ossim/sim/filetree"
	"github.com/inference-sim/ossim/sim/memory"
)

const mockBase = "http://ossim.test"

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(mockBase + "/")
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestClient_Schedule(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, mockBase+"/cpu",
		httpmock.NewStringResponder(http.StatusOK, `{"gantt":[{"pid":"A","start":0,"end":3}],"avg_waiting":0,"avg_turnaround":3}`))

	res, err := c.Schedule(context.Background(), sim.ScheduleRequest{Algorithm: "FCFS"})

	require.NoError(t, err)
	assert.Equal(t, []sim.Segment{{PID: "A", Start: 0, End: 3}}, res.Gantt)
	assert.Equal(t, 3.0, res.AvgTurnaround)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_Allocate(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, mockBase+"/memory",
		httpmock.NewStringResponder(http.StatusOK, `{"allocation":[{"process":5,"block":null,"allocated":false}]}`))

	res, err := c.Allocate(context.Background(), memory.Request{Blocks: []int64{1}, Processes: []int64{5}})

	require.NoError(t, err)
	require.Len(t, res.Allocation, 1)
	assert.Nil(t, res.Allocation[0].Block)
	assert.False(t, res.Allocation[0].Allocated)
}

func TestClient_DetectCycleAndCheckSafety(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, mockBase+"/rag",
		httpmock.NewStringResponder(http.StatusOK, `{"hasCycle":true,"cycleNodes":["P1","R1"]}`))
	httpmock.RegisterResponder(http.MethodPost, mockBase+"/banker",
		httpmock.NewStringResponder(http.StatusOK, `{"safe":true,"sequence":["P2","P1"]}`))

	cycle, err := c.DetectCycle(context.Background(), deadlock.Request{})
	require.NoError(t, err)
	assert.Equal(t, []sim.PID{"P1", "R1"}, cycle.CycleNodes)

	safety, err := c.CheckSafety(context.Background(), deadlock.Request{})
	require.NoError(t, err)
	assert.True(t, safety.Safe)
	assert.Equal(t, []sim.PID{"P2", "P1"}, safety.Sequence)
}

func TestClient_ErrorResponse(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, mockBase+"/cpu",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"unsupported scheduling algorithm \"X\"","kind":"unsupported_algorithm"}`))

	res, err := c.Schedule(context.Background(), sim.ScheduleRequest{Algorithm: "X"})

	assert.Nil(t, res)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, KindUnsupportedAlgorithm, apiErr.Kind)
	assert.Contains(t, apiErr.Message, `"X"`)
}

func TestClient_NonJSONError(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, mockBase+"/memory",
		httpmock.NewStringResponder(http.StatusBadGateway, "upstream down\n"))

	_, err := c.Allocate(context.Background(), memory.Request{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.Empty(t, apiErr.Kind)
}

func TestClient_AgainstServer(t *testing.T) {
	// GIVEN a real server
	srv := httptest.NewServer(NewServer(filetree.NewStore()).Handler())
	defer srv.Close()
	c := NewClient(srv.URL)
	quantum := int64(2)
	pid := func(s string) *sim.PID { p := sim.PID(s); return &p }
	n := func(v int64) *int64 { return &v }

	// WHEN
	res, err := c.Schedule(context.Background(), sim.ScheduleRequest{
		Algorithm: "rr",
		Quantum:   &quantum,
		Processes: []sim.ProcessSpec{
			{PID: pid("P1"), Arrival: n(0), Burst: n(4)},
			{PID: pid("P2"), Arrival: n(1), Burst: n(2)},
		},
	})

	// THEN the segments round-trip
	require.NoError(t, err)
	assert.Equal(t, []sim.Segment{
		{PID: "P1", Start: 0, End: 2},
		{PID: "P2", Start: 2, End: 4},
		{PID: "P1", Start: 4, End: 6},
	}, res.Gantt)
	assert.Equal(t, 1.5, res.AvgWaiting)
}
