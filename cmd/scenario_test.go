package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/ossim/sim"
	"github.com/inference-sim/ossim/sim/deadlock"
	"github.com/inference-sim/ossim/sim/memory"
)

const classroomScenario = `
name: classroom
scheduling:
  - algorithm: FCFS
    processes:
      - {pid: 1, arrival: 0, burst: 5}
      - {pid: 2, arrival: 1, burst: 3}
  - algorithm: rr
    quantum: 2
    trace: decisions
    processes:
      - {pid: P1, arrival: 0, burst: 4}
      - {pid: P2, arrival: 1, burst: 2}
memory:
  - method: best
    blocks: [100, 500, 200, 300, 600]
    processes: [212, 417, 112, 426]
deadlock:
  resources:
    - {id: R1, instances: 1}
    - {id: R2, instances: 1}
  processes:
    - id: P1
      request: {R1: 1}
      allocation: {R2: 1}
      max: {R1: 1, R2: 1}
    - id: P2
      request: {R2: 1}
      allocation: {R1: 1}
      max: {R1: 1, R2: 1}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ParsesAllSections(t *testing.T) {
	sc, err := LoadScenario(writeFile(t, "scenario.yaml", classroomScenario))

	require.NoError(t, err)
	assert.Equal(t, "classroom", sc.Name)
	require.Len(t, sc.Scheduling, 2)
	assert.Equal(t, int64(2), sc.Scheduling[1].QuantumOrDefault())
	assert.Equal(t, sim.PID("1"), *sc.Scheduling[0].Processes[0].PID)
	require.Len(t, sc.Memory, 1)
	require.NotNil(t, sc.Deadlock)
	assert.Equal(t, deadlock.Counts{{Resource: "R1", Units: 1}}, sc.Deadlock.Processes[0].Request)
	assert.NoError(t, sc.Validate())
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	_, err := LoadScenario(writeFile(t, "typo.yaml", "name: x\nschedulng: []\n"))

	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadScenario_EmptyFile(t *testing.T) {
	sc, err := LoadScenario(writeFile(t, "empty.yaml", ""))

	require.NoError(t, err)
	assert.NoError(t, sc.Validate())
	results, err := sc.RunAll()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScenario_Validate(t *testing.T) {
	t.Run("unknown algorithm", func(t *testing.T) {
		sc := &Scenario{Scheduling: []sim.ScheduleRequest{{Algorithm: "MLFQ"}}}
		var target *sim.UnsupportedAlgorithmError
		assert.True(t, errors.As(sc.Validate(), &target))
	})
	t.Run("unknown method", func(t *testing.T) {
		sc := &Scenario{Memory: []memory.Request{{Method: "next"}}}
		var target *memory.UnsupportedMethodError
		assert.True(t, errors.As(sc.Validate(), &target))
	})
	t.Run("unknown trace level", func(t *testing.T) {
		sc := &Scenario{Memory: []memory.Request{{Trace: "verbose"}}}
		assert.ErrorContains(t, sc.Validate(), "memory[0]")
	})
	t.Run("deadlock without ids", func(t *testing.T) {
		sc := &Scenario{Deadlock: &deadlock.Request{Processes: []deadlock.Process{{}}}}
		var target *sim.ValidationError
		assert.True(t, errors.As(sc.Validate(), &target))
	})
}

func TestScenario_RunAll_OrderAndResults(t *testing.T) {
	sc, err := LoadScenario(writeFile(t, "scenario.yaml", classroomScenario))
	require.NoError(t, err)

	results, err := sc.RunAll()

	require.NoError(t, err)
	require.Len(t, results, 5)
	fcfs := results[0].(*sim.Result)
	assert.Equal(t, "FCFS", fcfs.Algorithm)
	assert.Equal(t, 2.0, fcfs.AvgWaiting)
	rr := results[1].(*sim.Result)
	assert.Equal(t, "RR", rr.Algorithm)
	assert.NotNil(t, rr.Trace)
	best := results[2].(*memory.Result)
	assert.Equal(t, "best", best.Method)
	assert.True(t, results[3].(*deadlock.CycleResult).HasCycle)
	assert.False(t, results[4].(*deadlock.SafetyResult).Safe)
}

func TestScenario_RunAll_StopsAtFailingSection(t *testing.T) {
	sc := &Scenario{Scheduling: []sim.ScheduleRequest{{Algorithm: "SJF", Processes: []sim.ProcessSpec{{}}}}}

	results, err := sc.RunAll()

	assert.Nil(t, results)
	assert.ErrorContains(t, err, "scheduling[0]")
}

func TestRunCommand_TextReports(t *testing.T) {
	path := writeFile(t, "scenario.yaml", classroomScenario)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "--config", path, "--json=false", "--log", "error"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "=== Scheduling (FCFS) ===")
	assert.Contains(t, text, "=== Scheduling (RR) ===")
	assert.Contains(t, text, "Average Waiting      : 2.00")
	assert.Contains(t, text, "=== Memory Allocation (best fit) ===")
	assert.Contains(t, text, "Cycle detected through [P1 R1 P2 R2]")
	assert.Contains(t, text, "UNSAFE")
}
