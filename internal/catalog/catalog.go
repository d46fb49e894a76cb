package catalog

import (
	"sort"
	"strings"

	"catalogd/pkg/types"
)

// Catalog is the aggregate of all surviving models plus derived indexes.
// It is built once per ingestion and never mutated afterwards; the query
// layer takes it by reference and only reads.
type Catalog struct {
	// Models in document key order, filtered.
	Models []types.Model
	// Providers is the sorted, deduplicated set of non-empty provider keys.
	Providers []string
	// Modes is the sorted, deduplicated set of non-empty trimmed modes.
	Modes []string
	// BySlug maps slug to model; slugs can collide across providers and the
	// last writer wins, which is tolerated rather than treated as an error.
	BySlug map[string]types.Model
	// ByProvider buckets models per provider, preserving Models order.
	ByProvider map[string][]types.Model
}

// Build runs the full pipeline over a decoded document: validate and
// normalize every entry in document order, then index the survivors.
func Build(doc *Document) *Catalog {
	models := make([]types.Model, 0, len(doc.Keys))
	for _, id := range doc.Keys {
		m, ok := Process(id, doc.Records[id])
		if !ok {
			continue
		}
		models = append(models, m)
	}
	return FromModels(models)
}

// FromModels indexes an already-processed model list in a single pass.
// It never re-runs validation: the service layer uses it to rehydrate a
// catalog from cached models, which were validated when first built.
func FromModels(models []types.Model) *Catalog {
	c := &Catalog{
		Models:     models,
		BySlug:     make(map[string]types.Model, len(models)),
		ByProvider: make(map[string][]types.Model),
	}
	providerSet := make(map[string]struct{})
	modeSet := make(map[string]struct{})
	for _, m := range models {
		if m.Provider != "" {
			providerSet[m.Provider] = struct{}{}
		}
		if mode := strings.TrimSpace(m.Data.Mode); mode != "" {
			modeSet[mode] = struct{}{}
		}
		c.BySlug[m.Slug] = m
		c.ByProvider[m.Provider] = append(c.ByProvider[m.Provider], m)
	}
	c.Providers = sortedKeys(providerSet)
	c.Modes = sortedKeys(modeSet)
	return c
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
