// Package config loads and validates job and notifier configuration.
package config

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var kebabCase = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// JobDefinitionId is a validated kebab-case job identifier. The zero value is
// not a valid id; construct one with NewJobDefinitionId.
type JobDefinitionId struct {
	id string
}

// NewJobDefinitionId validates s and returns a JobDefinitionId, or an error
// if s is not kebab-case.
func NewJobDefinitionId(s string) (JobDefinitionId, error) {
	if !kebabCase.MatchString(s) {
		return JobDefinitionId{}, fmt.Errorf("job id %q is not kebab-case", s)
	}
	return JobDefinitionId{id: s}, nil
}

// MustJobDefinitionId is like NewJobDefinitionId but panics on error. Intended
// for tests and for literal ids known to be valid at compile time.
func MustJobDefinitionId(s string) JobDefinitionId {
	id, err := NewJobDefinitionId(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id JobDefinitionId) String() string {
	return id.id
}

// UnmarshalYAML validates the scalar as a kebab-case id while decoding.
func (id *JobDefinitionId) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := NewJobDefinitionId(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id JobDefinitionId) MarshalYAML() (interface{}, error) {
	return id.id, nil
}
