package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID       int
	Random   bool // Baseline agent without search
	Duration time.Duration
	Episodes int
	Cutoff   int
	Policy   string   // Rollout policy name
	Penalty  *float64 // Destruction penalty, search default when nil
}

type GameRecord struct {
	ID     int
	Map    uint64 // Map seed
	Agents []int  // AgentConfig.ID per player
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "random", "duration", "episodes", "cutoff", "policy", "penalty"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.FormatBool(config.Random),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			config.Policy,
			formatOptional(config.Penalty),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "match", "map", "agents", "winner", "scores", "turns", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Match,
			strconv.FormatUint(record.Map, 10),
			joinInts(record.Agents),
			strconv.Itoa(record.Winner),
			joinInts(record.Scores),
			strconv.Itoa(record.Turns),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "turn", "player", "ships", "horizon", "duration", "episodes", "rollouts", "tree_nodes"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Ships),
			strconv.Itoa(record.Horizon),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.TreeNodes),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatOptional(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'g', -1, 64)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
