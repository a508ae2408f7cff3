package domain

// State is a node of an Automaton.
// Identity is the pointer owned by one Automaton; the name is only a label.
type State struct {
	Name    string `json:"name" yaml:"name"`
	Initial bool   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final   bool   `json:"final,omitempty" yaml:"final,omitempty"`
}

// String returns the state name.
func (s *State) String() string {
	if s == nil {
		return ""
	}
	return s.Name
}
