package dataprocessing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "empresascli/internal/errors"
	"empresascli/internal/table"
)

// Analysis turns a snapshot table into a report table
type Analysis interface {
	// Name is the identifier used to select the analysis
	Name() string

	// Apply computes the report table. The input must not be modified.
	Apply(ctx context.Context, t *table.Table) (*table.Table, error)
}

// DefaultAnalysis is used when no analysis is requested
const DefaultAnalysis = "identity"

// AnalysisRegistry holds the analyses the report job can run
type AnalysisRegistry struct {
	analyses map[string]Analysis
}

// NewAnalysisRegistry creates a registry holding analyses
func NewAnalysisRegistry(analyses ...Analysis) (*AnalysisRegistry, error) {
	r := &AnalysisRegistry{analyses: make(map[string]Analysis, len(analyses))}
	for _, a := range analyses {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultAnalyses returns a registry with the built-in analyses
func DefaultAnalyses() *AnalysisRegistry {
	r, err := NewAnalysisRegistry(IdentityAnalysis{}, CNAECountAnalysis{}, CapitalByCNAEAnalysis{})
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds an analysis. Names must be unique.
func (r *AnalysisRegistry) Register(a Analysis) error {
	name := a.Name()
	if _, dup := r.analyses[name]; dup {
		return fmt.Errorf("analysis %q already registered", name)
	}
	r.analyses[name] = a
	return nil
}

// Get returns the named analysis. Unknown names fail with the list of known ones.
func (r *AnalysisRegistry) Get(name string) (Analysis, error) {
	if a, ok := r.analyses[name]; ok {
		return a, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("analysis %q (known: %s)", name, strings.Join(r.Names(), ", "))).
		WithContext("analysis", name)
}

// Names returns the registered names, sorted
func (r *AnalysisRegistry) Names() []string {
	names := make([]string, 0, len(r.analyses))
	for n := range r.analyses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
