package form

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed steps.yaml
var defaultLayout []byte

// FieldLayout is presentation for one field within a step.
type FieldLayout struct {
	Field       core.Field `yaml:"field" json:"field"`
	Placeholder string     `yaml:"placeholder" json:"placeholder,omitempty"`
	Hint        string     `yaml:"hint" json:"hint,omitempty"`
}

// Spec returns the validation spec behind the field.
func (f FieldLayout) Spec() core.FieldSpec {
	spec, _ := core.Spec(f.Field)
	return spec
}

// StepLayout is one page of the form.
type StepLayout struct {
	Key         string        `yaml:"key" json:"key"`
	Tab         string        `yaml:"tab" json:"tab"`
	Heading     string        `yaml:"heading" json:"heading"`
	Description string        `yaml:"description" json:"description"`
	Fields      []FieldLayout `yaml:"fields" json:"fields"`
}

// FieldKeys returns the step's fields in display order.
func (s StepLayout) FieldKeys() []core.Field {
	out := make([]core.Field, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Field
	}
	return out
}

// Layout partitions the submission fields into ordered steps.
type Layout struct {
	Title    string       `yaml:"title" json:"title"`
	Subtitle string       `yaml:"subtitle" json:"subtitle"`
	Steps    []StepLayout `yaml:"steps" json:"steps"`
}

// DefaultLayout returns the built-in three-step layout.
func DefaultLayout() Layout {
	l, err := ParseLayout(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("form: embedded layout: %v", err))
	}
	return l
}

// ParseLayout decodes a layout from YAML and checks that every submission
// field appears in exactly one step.
func ParseLayout(data []byte) (Layout, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Layout{}, fmt.Errorf("form: layout is empty")
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("form: decode layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func (l Layout) validate() error {
	if len(l.Steps) == 0 {
		return fmt.Errorf("form: layout has no steps")
	}
	seen := make(map[core.Field]string)
	for _, step := range l.Steps {
		if len(step.Fields) == 0 {
			return fmt.Errorf("form: step %q has no fields", step.Key)
		}
		for _, f := range step.Fields {
			if _, ok := core.Spec(f.Field); !ok {
				return fmt.Errorf("form: step %q: unknown field %q", step.Key, f.Field)
			}
			if prev, dup := seen[f.Field]; dup {
				return fmt.Errorf("form: field %q in both %q and %q", f.Field, prev, step.Key)
			}
			seen[f.Field] = step.Key
		}
	}
	for _, spec := range core.FieldSpecs {
		if _, ok := seen[spec.Field]; !ok {
			return fmt.Errorf("form: field %q is not in any step", spec.Field)
		}
	}
	return nil
}

// StepIndex returns the position of the step with the given key, or -1.
func (l Layout) StepIndex(key string) int {
	for i, s := range l.Steps {
		if s.Key == key {
			return i
		}
	}
	return -1
}
