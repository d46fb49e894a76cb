package types

// ModelRecord mirrors one entry of the upstream pricing document
// (model_prices_and_context_window.json). Every field is optional; the
// upstream file has no schema enforcement, so consumers must not assume
// presence of anything.
type ModelRecord struct {
	// Primary capability of the model (chat, embedding, completion, ...).
	// example: chat
	Mode string `json:"mode,omitempty" example:"chat"`
	// Raw provider namespace as published upstream.
	// example: vertex_ai-chat-models
	Provider string `json:"litellm_provider,omitempty" example:"openai"`

	// Cost in USD. The upstream mixes per-token and per-million-token
	// conventions; see catalog.NormalizeCost. Nil means unpublished.
	InputCostPerToken  *float64 `json:"input_cost_per_token,omitempty" example:"0.00003"`
	OutputCostPerToken *float64 `json:"output_cost_per_token,omitempty" example:"0.00006"`

	// Token limits are passthrough only and not validated. The upstream
	// sometimes publishes these as strings, hence the loose typing.
	MaxTokens       any `json:"max_tokens,omitempty"`
	MaxInputTokens  any `json:"max_input_tokens,omitempty"`
	MaxOutputTokens any `json:"max_output_tokens,omitempty"`
	MaxQueryTokens  any `json:"max_query_tokens,omitempty"`

	SupportsFunctionCalling         bool `json:"supports_function_calling,omitempty"`
	SupportsParallelFunctionCalling bool `json:"supports_parallel_function_calling,omitempty"`
	SupportsVision                  bool `json:"supports_vision,omitempty"`
	SupportsReasoning               bool `json:"supports_reasoning,omitempty"`
	SupportsWebSearch               bool `json:"supports_web_search,omitempty"`
	SupportsAudioInput              bool `json:"supports_audio_input,omitempty"`
	SupportsAudioOutput             bool `json:"supports_audio_output,omitempty"`
	SupportsPromptCaching           bool `json:"supports_prompt_caching,omitempty"`
	SupportsSystemMessages          bool `json:"supports_system_messages,omitempty"`
	SupportsResponseSchema          bool `json:"supports_response_schema,omitempty"`
}

// Model is a validated, normalized catalog entry derived from exactly one
// upstream record plus its raw identifier.
type Model struct {
	// Original upstream identifier, unchanged.
	// example: openai/gpt-4
	ID string `json:"id" example:"openai/gpt-4"`
	// Substring after the last '/' in ID. Never empty.
	// example: gpt-4
	Name string `json:"name" example:"gpt-4"`
	// Human-facing name; currently equal to Name.
	// example: gpt-4
	DisplayName string `json:"display_name" example:"gpt-4"`
	// Provider namespace taken from the record (may differ from the ID prefix).
	// example: openai
	Provider string `json:"provider" example:"openai"`
	// URL-safe lower-cased key derived from Name. Unique only together
	// with Provider.
	// example: gpt-4
	Slug string `json:"slug" example:"gpt-4"`
	// Normalized copy of the upstream record (costs rescaled to per-token).
	Data ModelRecord `json:"data"`
}
