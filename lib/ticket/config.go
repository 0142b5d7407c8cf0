// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/originmark/tickets/lib/ticketfield"
	"github.com/originmark/tickets/lib/ticketformat"
)

// Config declares everything a Factory needs to issue and decode
// tickets of one shape: the origin and data record schemas, the
// ordered list of spec versions (oldest first; the last is primary),
// the ticket string's character cap, and the default formatting.
//
// O and D are the caller's Go types for an origin and a data record;
// the conversion functions below map them to and from the positional
// []any slices lib/ticketfield operates on. Config does not retain
// secrets: keying material is supplied separately to [NewFactory].
//
// Specs may use different time zones; a list whose zones differ is not
// rejected, and each spec measures its timestamps from its own
// [Spec.OriginMillis].
type Config[O, D any] struct {
	OriginSchema *ticketfield.Schema
	DataSchema   *ticketfield.Schema
	Specs        []*Spec
	CharLimit    int
	Format       ticketformat.Format

	OriginToValues func(O) []any
	ValuesToOrigin func([]any) O
	DataToValues   func(D) []any
	ValuesToData   func([]any) D
}

// Validate checks that a Config is well-formed: at least one spec,
// a positive character limit, non-nil schemas, and non-nil
// conversion functions. It reports every problem found via
// errors.Join rather than stopping at the first.
func (c *Config[O, D]) Validate() error {
	var errs []error

	if len(c.Specs) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one spec is required", ErrInvalidArgument))
	}
	if c.CharLimit < 1 {
		errs = append(errs, fmt.Errorf("%w: char_limit must be >= 1, got %d", ErrInvalidArgument, c.CharLimit))
	}
	if c.OriginSchema == nil {
		errs = append(errs, fmt.Errorf("%w: origin schema is required", ErrInvalidArgument))
	}
	if c.DataSchema == nil {
		errs = append(errs, fmt.Errorf("%w: data schema is required", ErrInvalidArgument))
	}
	if c.OriginToValues == nil || c.ValuesToOrigin == nil {
		errs = append(errs, fmt.Errorf("%w: origin conversion functions are required", ErrInvalidArgument))
	}
	if c.DataToValues == nil || c.ValuesToData == nil {
		errs = append(errs, fmt.Errorf("%w: data conversion functions are required", ErrInvalidArgument))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PrimaryIndex returns the index of the primary (newest) spec.
func (c *Config[O, D]) PrimaryIndex() int { return len(c.Specs) - 1 }

// DefaultCharLimit is the character cap NewConfig and LoadConfig apply
// when a caller has not yet set CharLimit explicitly.
const DefaultCharLimit = 256

// NewConfig builds a Config from the two record schemas and the
// ordered spec list (oldest first; the last is primary), with
// CharLimit and Format defaulted. The caller still must set the four
// conversion functions (OriginToValues, ValuesToOrigin, DataToValues,
// ValuesToData) before the result will pass Validate, since Go cannot
// infer O and D from the schema/spec arguments alone.
func NewConfig[O, D any](originSchema, dataSchema *ticketfield.Schema, specs ...*Spec) *Config[O, D] {
	return &Config[O, D]{
		OriginSchema: originSchema,
		DataSchema:   dataSchema,
		Specs:        specs,
		CharLimit:    DefaultCharLimit,
		Format:       DefaultFormat,
	}
}

// LoadConfig reads a YAMLSpecList from path and builds a Config whose
// Specs come from it, with CharLimit and Format defaulted as in
// NewConfig (the YAML document does not set them). As with NewConfig, the
// caller still must set OriginSchema, DataSchema, and the four
// conversion functions: a YAML document names spec versions and
// keying secret sources (see YAMLSpec), not Go record shapes, so it
// can never fully determine a Config by itself.
func LoadConfig[O, D any](path string) (*Config[O, D], error) {
	list, err := LoadYAMLSpecList(path)
	if err != nil {
		return nil, err
	}
	specs, err := list.BuildSpecs()
	if err != nil {
		return nil, err
	}
	return &Config[O, D]{
		Specs:     specs,
		CharLimit: DefaultCharLimit,
		Format:    DefaultFormat,
	}, nil
}

// DefaultFormat is the process-wide default ticket string format:
// lowercase, groups of 5, hyphen-separated, padded with 'z'.
var DefaultFormat = ticketformat.Format{
	UpperCase:     false,
	GroupLength:   5,
	SeparatorChar: '-',
	PadGroups:     true,
}

// YAMLSpecList declaratively describes Config.Specs and the keying
// secret each one uses, for loading from a configuration file rather
// than building Spec values in code. Secret paths may use ${VAR} and
// ${VAR:-default} environment expansion, matching the convention the
// rest of this codebase's configuration loader uses.
type YAMLSpecList struct {
	Specs []YAMLSpec `yaml:"specs"`
}

// YAMLSpec is one entry of a YAMLSpecList.
type YAMLSpec struct {
	TimeZone       string `yaml:"time_zone"`
	Granularity    string `yaml:"granularity"`
	OriginYear     int    `yaml:"origin_year"`
	HashLengthBits int    `yaml:"hash_length_bits"`
	SecretFile     string `yaml:"secret_file,omitempty"`
}

// LoadYAMLSpecList reads and expands a YAMLSpecList from path.
func LoadYAMLSpecList(path string) (*YAMLSpecList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ticket: reading spec list %s: %w", path, err)
	}

	var list YAMLSpecList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("ticket: parsing spec list %s: %w", path, err)
	}
	for i := range list.Specs {
		list.Specs[i].SecretFile = expandVars(list.Specs[i].SecretFile)
	}
	return &list, nil
}

// BuildSpecs builds []*Spec from a YAMLSpecList's declarations.
func (l *YAMLSpecList) BuildSpecs() ([]*Spec, error) {
	specs := make([]*Spec, len(l.Specs))
	for i, s := range l.Specs {
		loc, err := time.LoadLocation(s.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("ticket: spec %d: time zone %q: %w", i, s.TimeZone, err)
		}
		gran, err := parseGranularity(s.Granularity)
		if err != nil {
			return nil, fmt.Errorf("ticket: spec %d: %w", i, err)
		}
		spec, err := NewSpec(loc, gran, s.OriginYear, s.HashLengthBits)
		if err != nil {
			return nil, fmt.Errorf("ticket: spec %d: %w", i, err)
		}
		specs[i] = spec
	}
	return specs, nil
}

func parseGranularity(s string) (Granularity, error) {
	switch s {
	case "millisecond":
		return Millisecond, nil
	case "second":
		return Second, nil
	case "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	default:
		return 0, fmt.Errorf("%w: unknown granularity %q", ErrInvalidArgument, s)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} references against
// the process environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
