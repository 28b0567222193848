// Package replay records matches as zstd-compressed JSON lines, one frame per
// turn.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"halite/game"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Frame is a turn as seen at its start, plus the commands played in it.
type Frame struct {
	Turn     int            `json:"turn"`
	Banks    map[int]int    `json:"banks"`
	Ships    []game.Ship    `json:"ships"`
	Commands map[int]string `json:"commands,omitempty"` // Player id -> command line
}

func NewFrame(state *game.State, commands map[int][]game.Command) Frame {
	frame := Frame{
		Turn:     state.Turn,
		Banks:    state.Scores(),
		Ships:    make([]game.Ship, 0, len(state.Ships)),
		Commands: make(map[int]string, len(commands)),
	}
	for _, id := range state.ShipIDs() {
		frame.Ships = append(frame.Ships, *state.Ships[id])
	}
	for player, cmds := range commands {
		frame.Commands[player] = game.FormatCommands(cmds)
	}
	return frame
}

type Writer struct {
	path string
	f    *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
}

// Create opens <dir>/<match>.jsonl.zst for writing.
func Create(dir, match string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create replay directory: %w", err)
	}
	path := filepath.Join(dir, match+".jsonl.zst")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create replay file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create replay encoder: %w", err)
	}
	return &Writer{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Write(frame Frame) error {
	b, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Close() error {
	var err error
	if ferr := w.w.Flush(); ferr != nil {
		err = ferr
	}
	if cerr := w.enc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := w.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Read decodes every frame of a replay file.
func Read(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create replay decoder: %w", err)
	}
	defer dec.Close()

	frames := []Frame{}
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var frame Frame
		if err := json.Unmarshal(scanner.Bytes(), &frame); err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}
	return frames, nil
}
