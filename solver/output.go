package solver

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domino14/shenzhen/move"
)

// Output is the on-disk form of a solution, read back by whatever replays
// it on the real board.
type Output struct {
	Name    string      `yaml:"name,omitempty"`
	Won     bool        `yaml:"won"`
	Moves   int         `yaml:"moves"`
	Nodes   int         `yaml:"nodes"`
	Score   float64     `yaml:"score"`
	Actions []move.Move `yaml:"actions"`
}

func (s *Solution) Output(name string) *Output {
	return &Output{
		Name:    name,
		Won:     s.Won,
		Moves:   s.Moves(),
		Nodes:   s.Nodes,
		Score:   s.Score,
		Actions: s.Actions,
	}
}

func (o *Output) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encoding solution: %w", err)
	}
	return enc.Close()
}

func ReadOutput(r io.Reader) (*Output, error) {
	o := &Output{}
	if err := yaml.NewDecoder(r).Decode(o); err != nil {
		return nil, fmt.Errorf("decoding solution: %w", err)
	}
	return o, nil
}
