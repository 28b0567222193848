package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "budget")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "budget"), filepath.Dir(w.Dir()))

	t.Run("writing agent configs", func(t *testing.T) {
		penalty, none := 1.5, 0.0
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 0, Random: true},
			{ID: 1, Duration: 100 * time.Millisecond, Cutoff: 20, Policy: "greedy", Penalty: &penalty},
			{ID: 2, Episodes: 10, Penalty: &none},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 4)
		require.Equal(t, "", rows[1][6], "Should leave an unset penalty blank")
		require.Equal(t, []string{"1", "false", "100ms", "0", "20", "greedy", "1.5"}, rows[2])
		require.Equal(t, "0", rows[3][6])
	})

	t.Run("writing game records", func(t *testing.T) {
		err := w.WriteGameRecords([]GameRecord{{
			ID:         1,
			Map:        42,
			Agents:     []int{0, 1},
			GameMetric: GameMetric{Match: "abc", Winner: 1, Scores: []int{3000, 7200}, Turns: 50},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "abc", "42", "0 1", "1", "3000 7200", "50"}, rows[1][:7])
	})

	t.Run("writing move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{Turn: 3, Player: 1, Ships: 2, SearchMetric: SearchMetric{
				Ships: 2, Horizon: 10, Episodes: 5, Rollouts: 25, TreeNodes: 52,
			}},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"game", "turn", "player", "ships", "horizon", "duration", "episodes", "rollouts", "tree_nodes"}, rows[0])
		require.Equal(t, []string{"1", "3", "1", "2", "10", "0s", "5", "25", "52"}, rows[1])
	})
}
