package load

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// NodeMergeQuery builds the parameterized upsert statement for a node load.
// The statement unwinds the $recs array, merges one node per record keyed on
// the identity property, and overwrites every non-key column as a property.
func NodeMergeQuery(spec NodeSpec) (string, error) {
	if err := spec.Key.validate(); err != nil {
		return "", err
	}
	if err := validateLabel(spec.Label); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "UNWIND $recs AS rec\nMERGE(n:%s {%s: rec.%s})",
		spec.Label, spec.Key.Property, spec.Key.Column)

	if props := propertyColumns(spec.Columns, spec.Key.Column); len(props) > 0 {
		b.WriteString("\n" + setClause("n", props))
	}

	b.WriteString("\nRETURN count(n) AS nodeLoadedCount")
	return b.String(), nil
}

// RelMergeQuery builds the parameterized upsert statement for a relationship
// load. Endpoints are located with MATCH, never created: a record whose
// source or target node is missing merges nothing and contributes zero to
// the returned count.
func RelMergeQuery(spec RelSpec) (string, error) {
	if err := spec.SourceKey.validate(); err != nil {
		return "", err
	}
	if err := spec.TargetKey.validate(); err != nil {
		return "", err
	}
	if err := validateLabel(spec.Labels.Source); err != nil {
		return "", err
	}
	if err := validateLabel(spec.Labels.Target); err != nil {
		return "", err
	}
	if !validToken(spec.Type) {
		return "", errors.Wrapf(ErrInvalidRelType, "relationship type %q", spec.Type)
	}

	merge := fmt.Sprintf("MERGE(s)-[r:%s]->(t)", spec.Type)
	if spec.RelKey != "" {
		merge = fmt.Sprintf("MERGE(s)-[r:%s {%s: rec.%s}]->(t)", spec.Type, spec.RelKey, spec.RelKey)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "UNWIND $recs AS rec\nMATCH(s:%s {%s: rec.%s})\nMATCH(t:%s {%s: rec.%s})\n",
		spec.Labels.Source, spec.SourceKey.Property, spec.SourceKey.Column,
		spec.Labels.Target, spec.TargetKey.Property, spec.TargetKey.Column)
	b.WriteString(merge)

	props := propertyColumns(spec.Columns, spec.SourceKey.Column, spec.TargetKey.Column, spec.RelKey)
	if len(props) > 0 {
		b.WriteString("\n" + setClause("r", props))
	}

	b.WriteString("\nRETURN count(r) AS relLoadedCount")
	return b.String(), nil
}

func (k KeyMapping) validate() error {
	if k.Property == "" || k.Column == "" {
		return errors.Wrapf(ErrInvalidMapping, "mapping %q -> %q", k.Property, k.Column)
	}
	return nil
}

func validateLabel(label string) error {
	if !validToken(label) {
		return errors.Wrapf(ErrInvalidLabel, "label %q", label)
	}
	return nil
}

// validToken accepts a single non-empty identifier: no whitespace and no
// colon, so multi-label shorthand cannot sneak into the query text.
func validToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\n:")
}

// propertyColumns keeps the columns that become SET assignments, preserving
// input order and dropping the key and disambiguation columns.
func propertyColumns(cols []string, exclude ...string) []string {
	excluded := mapset.NewSet[string](exclude...)
	props := make([]string, 0, len(cols))
	for _, col := range cols {
		if !excluded.Contains(col) {
			props = append(props, col)
		}
	}
	return props
}

func setClause(element string, props []string) string {
	assignments := make([]string, len(props))
	for i, prop := range props {
		assignments[i] = fmt.Sprintf("%s.%s = rec.%s", element, prop, prop)
	}
	return "SET " + strings.Join(assignments, ", ")
}
