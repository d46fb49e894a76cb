package catalog

import (
	"math"
	"strings"

	"catalogd/pkg/types"
)

const (
	// MaterialityThreshold is USD per million tokens. Entries whose pricing
	// sits entirely below it are dropped from the catalog.
	MaterialityThreshold = 0.01

	// perMillionBoundary separates plausible per-token values from values
	// the upstream expressed per million tokens. Chosen empirically; keep
	// the inclusive comparison, published pricing depends on it.
	perMillionBoundary = 0.001

	tokensPerMillion = 1e6
)

var slugReplacer = strings.NewReplacer(":", "-", "@", "-")

// ExtractName returns the substring after the last '/' in a raw identifier.
// Identifiers without a '/' are their own name.
func ExtractName(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Slugify lower-cases a model name and replaces ':' and '@' with '-',
// yielding a URL-safe, case-insensitive key.
func Slugify(name string) string {
	return slugReplacer.Replace(strings.ToLower(name))
}

// validPositiveCost reports whether c is a finite number greater than zero.
func validPositiveCost(c *float64) bool {
	return c != nil && !math.IsNaN(*c) && !math.IsInf(*c, 0) && *c > 0
}

// hasTokenPricing reports whether at least one of the per-token costs is a
// valid positive number. Models priced only per-image, per-second etc. have
// neither and are excluded.
func hasTokenPricing(in, out *float64) bool {
	return validPositiveCost(in) || validPositiveCost(out)
}

// clearsMateriality reports whether the pricing is material: at least one
// valid side must be >= MaterialityThreshold when scaled to USD per million
// tokens. A side that is absent or invalid does not count against the entry.
func clearsMateriality(in, out *float64) bool {
	inOK := validPositiveCost(in)
	outOK := validPositiveCost(out)
	var inPerM, outPerM float64
	if inOK {
		inPerM = *in * tokensPerMillion
	}
	if outOK {
		outPerM = *out * tokensPerMillion
	}
	switch {
	case inOK && outOK:
		return inPerM >= MaterialityThreshold || outPerM >= MaterialityThreshold
	case inOK:
		return inPerM >= MaterialityThreshold
	case outOK:
		return outPerM >= MaterialityThreshold
	}
	return true
}

// NormalizeCost rescales an ambiguously expressed cost into USD per token.
// Values at or above perMillionBoundary are assumed to be per million tokens
// and divided down; smaller values are assumed to already be per-token.
// Absent or NaN values stay absent. The input is never mutated.
func NormalizeCost(c *float64) *float64 {
	if c == nil || math.IsNaN(*c) {
		return nil
	}
	v := *c
	if v >= perMillionBoundary {
		v = v / tokensPerMillion
	}
	return &v
}

// rejectedMode reports whether a mode string disqualifies the entry: absent,
// blank, or a case-insensitive "na"/"n/a" placeholder.
func rejectedMode(mode string) bool {
	m := strings.TrimSpace(mode)
	return m == "" || strings.EqualFold(m, "na") || strings.EqualFold(m, "n/a")
}

// Process validates and normalizes one raw entry. The rules run in a fixed
// order and the first failure wins; reordering changes which borderline
// entries survive. Rejection is an expected outcome, not an error.
func Process(id string, rec types.ModelRecord) (types.Model, bool) {
	name := ExtractName(id)
	if strings.TrimSpace(name) == "" {
		return types.Model{}, false
	}
	if rejectedMode(rec.Mode) {
		return types.Model{}, false
	}
	if !hasTokenPricing(rec.InputCostPerToken, rec.OutputCostPerToken) {
		return types.Model{}, false
	}
	if !clearsMateriality(rec.InputCostPerToken, rec.OutputCostPerToken) {
		return types.Model{}, false
	}

	data := rec
	data.InputCostPerToken = NormalizeCost(rec.InputCostPerToken)
	data.OutputCostPerToken = NormalizeCost(rec.OutputCostPerToken)

	// Normalization can move a value across the threshold, so both pricing
	// rules run again on the rescaled costs.
	if !hasTokenPricing(data.InputCostPerToken, data.OutputCostPerToken) {
		return types.Model{}, false
	}
	if !clearsMateriality(data.InputCostPerToken, data.OutputCostPerToken) {
		return types.Model{}, false
	}

	return types.Model{
		ID:          id,
		Name:        name,
		DisplayName: name,
		Provider:    rec.Provider,
		Slug:        Slugify(name),
		Data:        data,
	}, true
}
