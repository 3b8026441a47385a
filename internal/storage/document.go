package storage

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is a named credential record
type Profile struct {
	APIKey string `yaml:"api_key,omitempty"`
}

// Document is the on-disk configuration file:
//
//	profiles:
//	  default:
//	    api_key: re_...
type Document struct {
	Profiles Profiles `yaml:"profiles"`
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{}
}

// Profiles is a name -> Profile mapping that remembers insertion order,
// which is also the order the entries appear in the file.
type Profiles struct {
	names  []string
	byName map[string]Profile
}

// Get returns the named profile
func (p *Profiles) Get(name string) (Profile, bool) {
	prof, ok := p.byName[name]
	return prof, ok
}

// Set inserts or overwrites a profile. Overwriting keeps the original position.
func (p *Profiles) Set(name string, prof Profile) {
	if p.byName == nil {
		p.byName = make(map[string]Profile)
	}
	if _, exists := p.byName[name]; !exists {
		p.names = append(p.names, name)
	}
	p.byName[name] = prof
}

// Delete removes a profile and reports whether it existed
func (p *Profiles) Delete(name string) bool {
	if _, exists := p.byName[name]; !exists {
		return false
	}
	delete(p.byName, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns profile names in storage order
func (p *Profiles) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of profiles
func (p *Profiles) Len() int {
	return len(p.names)
}

// MarshalYAML emits the profiles as a mapping in storage order
func (p Profiles) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range p.names {
		var value yaml.Node
		if err := value.Encode(p.byName[name]); err != nil {
			return nil, fmt.Errorf("failed to encode profile '%s': %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node, keeping key order
func (p *Profiles) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: profiles must be a mapping", value.Line)
	}

	decoded := Profiles{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: profile name must be a string", key.Line)
		}
		if _, dup := decoded.Get(key.Value); dup {
			return fmt.Errorf("line %d: duplicate profile '%s'", key.Line, key.Value)
		}

		var prof Profile
		if err := val.Decode(&prof); err != nil {
			return fmt.Errorf("profile '%s': %w", key.Value, err)
		}
		decoded.Set(key.Value, prof)
	}

	*p = decoded
	return nil
}
