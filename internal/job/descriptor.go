package job

import "fmt"

// Descriptor describes one named job: a command reference plus its
// input/output file references and free-form options. Descriptors are built
// once and consumed read-only.
type Descriptor struct {
	Name    string            `yaml:"name"`
	Stage   int               `yaml:"stage"`
	Command string            `yaml:"command"`
	Inputs  map[string]string `yaml:"inputs,omitempty"`
	Outputs map[string]string `yaml:"outputs,omitempty"`
	Options map[string]string `yaml:"options,omitempty"`
}

// Store is an insertion-ordered mapping from job name to descriptor.
type Store struct {
	names  []string
	byName map[string]Descriptor
}

// NewStore returns an empty store, optionally pre-populated with the given
// descriptors in order.
func NewStore(descriptors ...Descriptor) (*Store, error) {
	s := &Store{byName: make(map[string]Descriptor)}
	for _, d := range descriptors {
		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a descriptor. Job names are unique per pipeline.
func (s *Store) Add(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("job descriptor has no name")
	}
	if _, ok := s.byName[d.Name]; ok {
		return fmt.Errorf("duplicate job name: %s", d.Name)
	}
	s.names = append(s.names, d.Name)
	s.byName[d.Name] = d
	return nil
}

// Get returns the descriptor with the given name.
func (s *Store) Get(name string) (Descriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Names returns all job names in insertion order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Descriptors returns all descriptors in insertion order.
func (s *Store) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

// Len returns the number of descriptors in the store.
func (s *Store) Len() int {
	return len(s.names)
}
