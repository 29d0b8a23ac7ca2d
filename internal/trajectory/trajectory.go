// Package trajectory records per-step observations and exports them as CSV.
package trajectory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
)

// metaColumns precede the observation columns in every row.
var metaColumns = []string{"episode", "tick", "action", "reward", "score"}

// Step is one recorded transition.
type Step struct {
	Episode     int
	Tick        int
	Action      flappy.Action
	Reward      float64
	Score       int
	Observation flappy.Observation
}

// Recorder accumulates steps for later export.
type Recorder struct {
	labels []string
	steps  []Step
}

// NewRecorder creates a recorder for observations with the given labels.
func NewRecorder(labels []string) *Recorder {
	l := make([]string, len(labels))
	copy(l, labels)
	return &Recorder{labels: l}
}

// Record appends one step. The observation is copied.
func (r *Recorder) Record(episode int, a flappy.Action, res flappy.StepResult) {
	obs := make(flappy.Observation, len(res.Observation))
	copy(obs, res.Observation)
	r.steps = append(r.steps, Step{
		Episode:     episode,
		Tick:        res.Info.Tick,
		Action:      a,
		Reward:      res.Reward,
		Score:       res.Info.Score,
		Observation: obs,
	})
}

// Append adds already-recorded steps, e.g. from another recorder.
func (r *Recorder) Append(steps ...Step) {
	r.steps = append(r.steps, steps...)
}

// Steps returns the recorded steps.
func (r *Recorder) Steps() []Step {
	return r.steps
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Header returns the CSV header row.
func (r *Recorder) Header() []string {
	return append(append([]string{}, metaColumns...), r.labels...)
}

// WriteCSV writes the header and one row per step.
func (r *Recorder) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(r.Header()); err != nil {
		return fmt.Errorf("trajectory: write header: %w", err)
	}

	row := make([]string, 0, len(metaColumns)+len(r.labels))
	for _, s := range r.steps {
		if len(s.Observation) != len(r.labels) {
			return fmt.Errorf("trajectory: step %d of episode %d has %d values, expected %d",
				s.Tick, s.Episode, len(s.Observation), len(r.labels))
		}
		row = row[:0]
		row = append(row,
			strconv.Itoa(s.Episode),
			strconv.Itoa(s.Tick),
			strconv.Itoa(int(s.Action)),
			strconv.FormatFloat(s.Reward, 'f', -1, 64),
			strconv.Itoa(s.Score),
		)
		for _, v := range s.Observation {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("trajectory: write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes the CSV to path, replacing any existing file.
func (r *Recorder) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trajectory: %w", err)
	}
	if err := r.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadCSV parses a file written by WriteCSV. It returns the observation labels and the steps.
func ReadCSV(rd io.Reader) ([]string, []Step, error) {
	reader := csv.NewReader(rd)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("trajectory: empty file")
		}
		return nil, nil, fmt.Errorf("trajectory: read header: %w", err)
	}
	if len(header) < len(metaColumns) {
		return nil, nil, fmt.Errorf("trajectory: header must have at least %d columns", len(metaColumns))
	}
	for i, name := range metaColumns {
		if header[i] != name {
			return nil, nil, fmt.Errorf("trajectory: column %d is %q, expected %q", i, header[i], name)
		}
	}
	labels := header[len(metaColumns):]

	var steps []Step
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("trajectory: read row: %w", err)
		}
		s, err := parseRow(record)
		if err != nil {
			return nil, nil, err
		}
		steps = append(steps, s)
	}
	return labels, steps, nil
}

func parseRow(record []string) (Step, error) {
	var s Step
	ints := []*int{&s.Episode, &s.Tick, nil, nil, &s.Score}
	for i, dst := range ints {
		if dst == nil {
			continue
		}
		v, err := strconv.Atoi(record[i])
		if err != nil {
			return s, fmt.Errorf("trajectory: column %s: %w", metaColumns[i], err)
		}
		*dst = v
	}

	action, err := strconv.Atoi(record[2])
	if err != nil {
		return s, fmt.Errorf("trajectory: column action: %w", err)
	}
	s.Action = flappy.Action(action)

	if s.Reward, err = strconv.ParseFloat(record[3], 64); err != nil {
		return s, fmt.Errorf("trajectory: column reward: %w", err)
	}

	s.Observation = make(flappy.Observation, 0, len(record)-len(metaColumns))
	for _, field := range record[len(metaColumns):] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return s, fmt.Errorf("trajectory: observation value: %w", err)
		}
		s.Observation = append(s.Observation, v)
	}
	return s, nil
}
