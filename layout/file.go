package layout

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/game"
)

// File is a layout stored as YAML:
//
//	name: tuesday
//	rows:
//	  - [R5, G0, X, B9, "?", G3, R0, B1]
//	  - ...
type File struct {
	Name string     `yaml:"name,omitempty"`
	Rows [][]string `yaml:"rows"`
}

func (f *File) Grid() ([][]card.Card, error) {
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	grid := make([][]card.Card, 0, len(f.Rows))
	for i, r := range f.Rows {
		row, err := parseRow(r)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrBadLayout, i, err)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func NewFile(name string, grid [][]card.Card) *File {
	f := &File{Name: name, Rows: make([][]string, len(grid))}
	for i, row := range grid {
		f.Rows[i] = make([]string, len(row))
		for j, c := range row {
			f.Rows[i][j] = c.String()
		}
	}
	return f
}

func Read(r io.Reader) (*File, error) {
	f := &File{}
	if err := yaml.NewDecoder(r).Decode(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLayout, err)
	}
	return f, nil
}

func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Load reads a layout file and builds the validated position from it.
func Load(path string) (*game.GameState, *File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()
	f, err := Read(fh)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	grid, err := f.Grid()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := game.FromGrid(grid)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, f, nil
}
