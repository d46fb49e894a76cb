package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: upstream fetch failed
	Error string `json:"error" example:"upstream fetch failed"`
	// HTTP status code.
	// example: 502
	Code int `json:"code" example:"502"`
}

// CatalogPage is one page of processed models returned by GET /v1/catalog.
type CatalogPage struct {
	// Models on this page.
	Items []Model `json:"items"`
	// 1-based index of the first item on this page, 0 when empty.
	// example: 1
	RangeStart int `json:"range_start" example:"1"`
	// 1-based index of the last item on this page, 0 when empty.
	// example: 50
	RangeEnd int `json:"range_end" example:"50"`
	// Total matching models before pagination.
	// example: 312
	Total int `json:"total" example:"312"`
	// Current page number, clamped to [1, total_pages].
	// example: 1
	Page int `json:"page" example:"1"`
	// Total number of pages, at least 1.
	// example: 7
	TotalPages int `json:"total_pages" example:"7"`
}

// ProviderInfo pairs a raw provider key with its display name.
type ProviderInfo struct {
	// Raw provider key as it appears upstream.
	// example: vertex_ai-chat-models
	Key string `json:"key" example:"vertex_ai-chat-models"`
	// Human-readable display name.
	// example: Vertex AI (Chat)
	DisplayName string `json:"display_name" example:"Vertex AI (Chat)"`
}

// ProvidersResponse is returned by GET /v1/providers.
type ProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
}

// ModesResponse is returned by GET /v1/modes.
type ModesResponse struct {
	Modes []string `json:"modes"`
}

// ProviderStat summarizes one provider for GET /v1/providers/stats.
type ProviderStat struct {
	// Raw provider key.
	// example: openai
	Name string `json:"name" example:"openai"`
	// Human-readable display name.
	// example: OpenAI
	DisplayName string `json:"display_name" example:"OpenAI"`
	// Number of catalog models under this provider.
	// example: 42
	Count int `json:"count" example:"42"`
	// Mean input cost per token across models that publish one. 0 when none do.
	// example: 0.00000125
	AvgInputCostPerToken float64 `json:"avg_input_cost_per_token" example:"0.00000125"`
	// Mean output cost per token across models that publish one. 0 when none do.
	// example: 0.000005
	AvgOutputCostPerToken float64 `json:"avg_output_cost_per_token" example:"0.000005"`
}

// StatsResponse is returned by GET /v1/providers/stats.
type StatsResponse struct {
	Providers []ProviderStat `json:"providers"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall service state (empty, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// ULID identifying the current catalog snapshot.
	// example: 01J9ZHN2M3R8YPXW4Q5T6V7B8C
	BuildID string `json:"build_id,omitempty" example:"01J9ZHN2M3R8YPXW4Q5T6V7B8C"`
	// Number of models in the current snapshot.
	// example: 1423
	Models int `json:"models" example:"1423"`
	// Number of distinct providers in the current snapshot.
	// example: 61
	Providers int `json:"providers" example:"61"`
	// Number of distinct modes in the current snapshot.
	// example: 8
	Modes int `json:"modes" example:"8"`
	// Unix time of the last successful refresh, 0 if never.
	// example: 1700000000
	LastRefreshUnix int64 `json:"last_refresh_unix" example:"1700000000"`
	// Last fetch error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total successful refreshes since start.
	// example: 12
	RefreshesTotal uint64 `json:"refreshes_total" example:"12"`
	// Total failed fetch attempts since start.
	// example: 1
	FetchFailuresTotal uint64 `json:"fetch_failures_total" example:"1"`
}
