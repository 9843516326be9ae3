package genbox

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v2"
)

// Markers are the literal substrings that drive section selection.
type Markers struct {
	Start    []string `yaml:"start"`
	Continue []string `yaml:"continue"`
	End      []string `yaml:"end"`
}

// DefaultMarkers select the closed-transactions block of a Genbox report.
// Continue markers match the account lines interleaved with the trades.
var DefaultMarkers = Markers{
	Start:    []string{"Closed Transactions:"},
	Continue: []string{"Genbox", "balance", "Deposit"},
	End:      []string{"Closed P/L:"},
}

// State of the section scanner.
type State int

const (
	Searching State = iota
	Collecting
)

func (s State) String() string {
	if s == Collecting {
		return "collecting"
	}
	return "searching"
}

// Action tells the scanner what to do with the row it just looked at.
type Action int

const (
	ActionSkip Action = iota
	ActionRetain
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionRetain:
		return "retain"
	case ActionStop:
		return "stop"
	default:
		return "skip"
	}
}

// Step is the transition function of the scanner. Matching is case-sensitive
// substring containment.
func Step(s State, rowText string, m Markers) (State, Action) {
	if s == Searching {
		if containsAny(rowText, m.Start) {
			return Collecting, ActionSkip
		}
		return Searching, ActionSkip
	}
	if containsAny(rowText, m.Continue) {
		return Collecting, ActionSkip
	}
	if containsAny(rowText, m.End) {
		return Collecting, ActionStop
	}
	return Collecting, ActionRetain
}

// SelectSection scans rows in order and returns those between the start and
// end markers, minus continue-marker rows. The last retained row is the
// section's summary line and is always dropped.
func SelectSection[T any](rows []T, text func(T) string, m Markers) []T {
	state := Searching
	retained := make([]T, 0, len(rows))

scan:
	for _, row := range rows {
		var action Action
		state, action = Step(state, text(row), m)
		switch action {
		case ActionRetain:
			retained = append(retained, row)
		case ActionStop:
			break scan
		}
	}

	if len(retained) == 0 {
		return retained
	}
	return retained[:len(retained)-1]
}

// ListRows returns every <tr> below table in document order. A nil table
// has no rows.
func ListRows(table *html.Node) []*html.Node {
	if table == nil {
		return []*html.Node{}
	}
	rows := findAll(table, atom.Tr)
	if rows == nil {
		return []*html.Node{}
	}
	return rows
}

// SelectRows applies SelectSection to table rows using their visible text.
func SelectRows(rows []*html.Node, m Markers) []*html.Node {
	return SelectSection(rows, NodeText, m)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// LoadMarkers reads a marker profile from YAML:
//
//	start: ["Closed Transactions:"]
//	continue: ["Genbox", "balance", "Deposit"]
//	end: ["Closed P/L:"]
func LoadMarkers(r io.Reader) (Markers, error) {
	var m Markers
	data, err := io.ReadAll(r)
	if err != nil {
		return Markers{}, fmt.Errorf("reading marker profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Markers{}, fmt.Errorf("decoding marker profile: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Markers{}, err
	}
	return m, nil
}

// LoadMarkersFile reads a marker profile from path.
func LoadMarkersFile(path string) (Markers, error) {
	f, err := os.Open(path)
	if err != nil {
		return Markers{}, fmt.Errorf("opening marker profile: %w", err)
	}
	defer f.Close()
	return LoadMarkers(f)
}

// Validate rejects profiles that could never open or close a section, and
// empty markers, which would match every row.
func (m Markers) Validate() error {
	if len(m.Start) == 0 {
		return fmt.Errorf("marker profile: no start markers")
	}
	if len(m.End) == 0 {
		return fmt.Errorf("marker profile: no end markers")
	}
	for _, set := range [][]string{m.Start, m.Continue, m.End} {
		for _, s := range set {
			if s == "" {
				return fmt.Errorf("marker profile: empty marker")
			}
		}
	}
	return nil
}
