package catalog

import (
	"testing"

	"catalogd/pkg/types"
)

func testCatalog() *Catalog {
	models := []types.Model{
		{ID: "openai/gpt-4", Name: "gpt-4", DisplayName: "gpt-4", Provider: "openai", Slug: "gpt-4",
			Data: types.ModelRecord{Mode: "chat", InputCostPerToken: fp(0.00003), OutputCostPerToken: fp(0.00006), SupportsFunctionCalling: true, SupportsVision: true}},
		{ID: "openai/gpt-4o-mini", Name: "gpt-4o-mini", DisplayName: "gpt-4o-mini", Provider: "openai", Slug: "gpt-4o-mini",
			Data: types.ModelRecord{Mode: "chat", InputCostPerToken: fp(0.00000015), OutputCostPerToken: fp(0.0000006), SupportsFunctionCalling: true}},
		{ID: "anthropic/claude-3-opus", Name: "claude-3-opus", DisplayName: "claude-3-opus", Provider: "anthropic", Slug: "claude-3-opus",
			Data: types.ModelRecord{Mode: "chat", InputCostPerToken: fp(0.000015), OutputCostPerToken: fp(0.000075), SupportsVision: true}},
		{ID: "openai/text-embedding-3-small", Name: "text-embedding-3-small", DisplayName: "text-embedding-3-small", Provider: "openai", Slug: "text-embedding-3-small",
			Data: types.ModelRecord{Mode: "embedding", InputCostPerToken: fp(0.00000002)}},
	}
	return FromModels(models)
}

func TestFilterByProvider(t *testing.T) {
	c := testCatalog()
	if got := c.FilterByProvider("openai"); len(got) != 3 {
		t.Fatalf("openai models=%d", len(got))
	}
	if got := c.FilterByProvider("OpenAI"); len(got) != 0 {
		t.Fatalf("provider match must be case-sensitive, got %d", len(got))
	}
	if got := c.FilterByProvider("nope"); len(got) != 0 {
		t.Fatalf("unknown provider=%d", len(got))
	}
}

func TestFilterByMode(t *testing.T) {
	c := testCatalog()
	if got := c.FilterByMode("chat"); len(got) != 3 {
		t.Fatalf("chat models=%d", len(got))
	}
	if got := c.FilterByMode("embedding"); len(got) != 1 {
		t.Fatalf("embedding models=%d", len(got))
	}
}

func TestFilterByCapability(t *testing.T) {
	c := testCatalog()
	if got := c.FilterByCapability("supports_vision"); len(got) != 2 {
		t.Fatalf("vision models=%d", len(got))
	}
	if got := c.FilterByCapability("supports_function_calling"); len(got) != 2 {
		t.Fatalf("tool models=%d", len(got))
	}
	if got := c.FilterByCapability("supports_web_search"); len(got) != 0 {
		t.Fatalf("web search models=%d", len(got))
	}
	if got := c.FilterByCapability("bogus_flag"); len(got) != 0 {
		t.Fatalf("unknown flag models=%d", len(got))
	}
}

func TestSearch(t *testing.T) {
	c := testCatalog()
	if got := c.Search("GPT", ""); len(got) != 2 {
		t.Fatalf("gpt matches=%d", len(got))
	}
	// Provider substring also matches.
	if got := c.Search("anthro", ""); len(got) != 1 {
		t.Fatalf("anthro matches=%d", len(got))
	}
	// Provider scoping restricts the search to that bucket.
	if got := c.Search("claude", "openai"); len(got) != 0 {
		t.Fatalf("scoped matches=%d", len(got))
	}
	if got := c.Search("embedding", "openai"); len(got) != 1 {
		t.Fatalf("scoped embedding matches=%d", len(got))
	}
}

func TestPaginate(t *testing.T) {
	c := testCatalog()
	p := Paginate(c.Models, 1, 3)
	if len(p.Items) != 3 || p.RangeStart != 1 || p.RangeEnd != 3 || p.TotalPages != 2 || p.Total != 4 {
		t.Fatalf("page1=%+v", p)
	}
	p = Paginate(c.Models, 2, 3)
	if len(p.Items) != 1 || p.RangeStart != 4 || p.RangeEnd != 4 || p.Page != 2 {
		t.Fatalf("page2=%+v", p)
	}
	// Out-of-range pages clamp.
	if p = Paginate(c.Models, 99, 3); p.Page != 2 {
		t.Fatalf("overflow page=%d", p.Page)
	}
	if p = Paginate(c.Models, 0, 3); p.Page != 1 {
		t.Fatalf("underflow page=%d", p.Page)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 1, 10)
	if p.TotalPages != 1 || p.Page != 1 || p.RangeStart != 0 || p.RangeEnd != 0 || len(p.Items) != 0 {
		t.Fatalf("empty page=%+v", p)
	}
}

func TestProviderStats(t *testing.T) {
	c := testCatalog()
	stats := c.ProviderStats()
	if len(stats) != 2 {
		t.Fatalf("stats=%d", len(stats))
	}
	if stats[0].Name != "openai" || stats[0].Count != 3 {
		t.Fatalf("top stat=%+v", stats[0])
	}
	if stats[1].Name != "anthropic" || stats[1].Count != 1 {
		t.Fatalf("second stat=%+v", stats[1])
	}
	if stats[1].AvgInputCostPerToken != 0.000015 || stats[1].AvgOutputCostPerToken != 0.000075 {
		t.Fatalf("anthropic averages=%+v", stats[1])
	}
	if stats[0].DisplayName != "OpenAI" {
		t.Fatalf("display name=%q", stats[0].DisplayName)
	}
}

func TestAverageCosts(t *testing.T) {
	models := []types.Model{
		{Data: types.ModelRecord{InputCostPerToken: fp(2), OutputCostPerToken: fp(4)}},
		{Data: types.ModelRecord{InputCostPerToken: fp(4)}},
	}
	avgIn, avgOut := AverageCosts(models)
	if avgIn != 3 {
		t.Fatalf("avgIn=%v", avgIn)
	}
	// Only one model publishes an output cost; the mean covers it alone.
	if avgOut != 4 {
		t.Fatalf("avgOut=%v", avgOut)
	}
	avgIn, avgOut = AverageCosts(nil)
	if avgIn != 0 || avgOut != 0 {
		t.Fatalf("empty averages=%v %v", avgIn, avgOut)
	}
}

func TestIsKnownCapability(t *testing.T) {
	if !IsKnownCapability("supports_vision") {
		t.Fatal("supports_vision should be known")
	}
	if IsKnownCapability("supports_time_travel") {
		t.Fatal("unknown flag accepted")
	}
}
