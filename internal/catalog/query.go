package catalog

import (
	"math"
	"sort"
	"strings"

	"catalogd/pkg/types"
)

// CapabilityNames lists the boolean capability flags that can be filtered on,
// using their upstream JSON field names.
var CapabilityNames = []string{
	"supports_function_calling",
	"supports_parallel_function_calling",
	"supports_vision",
	"supports_reasoning",
	"supports_web_search",
	"supports_audio_input",
	"supports_audio_output",
	"supports_prompt_caching",
	"supports_system_messages",
	"supports_response_schema",
}

// HasCapability reports whether the named flag is strictly true on the
// record. Unknown names are simply false.
func HasCapability(rec types.ModelRecord, name string) bool {
	switch name {
	case "supports_function_calling":
		return rec.SupportsFunctionCalling
	case "supports_parallel_function_calling":
		return rec.SupportsParallelFunctionCalling
	case "supports_vision":
		return rec.SupportsVision
	case "supports_reasoning":
		return rec.SupportsReasoning
	case "supports_web_search":
		return rec.SupportsWebSearch
	case "supports_audio_input":
		return rec.SupportsAudioInput
	case "supports_audio_output":
		return rec.SupportsAudioOutput
	case "supports_prompt_caching":
		return rec.SupportsPromptCaching
	case "supports_system_messages":
		return rec.SupportsSystemMessages
	case "supports_response_schema":
		return rec.SupportsResponseSchema
	}
	return false
}

// IsKnownCapability reports whether name is one of the filterable flags.
func IsKnownCapability(name string) bool {
	for _, n := range CapabilityNames {
		if n == name {
			return true
		}
	}
	return false
}

// FilterByProvider returns models whose provider matches exactly,
// case-sensitive as stored.
func (c *Catalog) FilterByProvider(provider string) []types.Model {
	return append([]types.Model(nil), c.ByProvider[provider]...)
}

// FilterByMode returns models whose mode matches exactly.
func (c *Catalog) FilterByMode(mode string) []types.Model {
	var out []types.Model
	for _, m := range c.Models {
		if m.Data.Mode == mode {
			out = append(out, m)
		}
	}
	return out
}

// FilterByCapability returns models where the named flag is strictly true.
func (c *Catalog) FilterByCapability(name string) []types.Model {
	var out []types.Model
	for _, m := range c.Models {
		if HasCapability(m.Data, name) {
			out = append(out, m)
		}
	}
	return out
}

// Search returns models whose name, display name, or provider contains the
// query, case-insensitively. A non-empty provider scopes the search to that
// provider's bucket.
func (c *Catalog) Search(query, provider string) []types.Model {
	base := c.Models
	if provider != "" {
		base = c.ByProvider[provider]
	}
	q := strings.ToLower(query)
	var out []types.Model
	for _, m := range base {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.DisplayName), q) ||
			strings.Contains(strings.ToLower(m.Provider), q) {
			out = append(out, m)
		}
	}
	return out
}

// Paginate slices a model list into a 1-indexed page. Page numbers outside
// [1, totalPages] are clamped, and totalPages is at least 1 so an empty list
// still yields a well-formed page.
func Paginate(models []types.Model, page, pageSize int) types.CatalogPage {
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(models)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	out := types.CatalogPage{
		Items:      append([]types.Model(nil), models[start:end]...),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
	if start < end {
		out.RangeStart = start + 1
		out.RangeEnd = end
	}
	return out
}

// AverageCosts returns the arithmetic mean of the input and output per-token
// costs over the models that publish a valid number for the respective field.
// Either mean is 0 when no model contributes to it.
func AverageCosts(models []types.Model) (avgInput, avgOutput float64) {
	var inSum, outSum float64
	var inN, outN int
	for _, m := range models {
		if c := m.Data.InputCostPerToken; c != nil && !math.IsNaN(*c) && !math.IsInf(*c, 0) {
			inSum += *c
			inN++
		}
		if c := m.Data.OutputCostPerToken; c != nil && !math.IsNaN(*c) && !math.IsInf(*c, 0) {
			outSum += *c
			outN++
		}
	}
	if inN > 0 {
		avgInput = inSum / float64(inN)
	}
	if outN > 0 {
		avgOutput = outSum / float64(outN)
	}
	return avgInput, avgOutput
}

// ProviderStats summarizes each provider with a surviving model: model count
// plus average published costs, sorted by count descending with name as the
// tiebreaker so output is stable.
func (c *Catalog) ProviderStats() []types.ProviderStat {
	out := make([]types.ProviderStat, 0, len(c.Providers))
	for _, p := range c.Providers {
		bucket := c.ByProvider[p]
		if len(bucket) == 0 {
			continue
		}
		avgIn, avgOut := AverageCosts(bucket)
		out = append(out, types.ProviderStat{
			Name:                  p,
			DisplayName:           FormatProviderName(p),
			Count:                 len(bucket),
			AvgInputCostPerToken:  avgIn,
			AvgOutputCostPerToken: avgOut,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
