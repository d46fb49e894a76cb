package catalog

import (
	"strings"
	"unicode"
)

// providerDisplayNames maps raw upstream provider keys to human-readable
// names. Manually curated and open-ended; missing keys fall back to
// FormatProviderName's title-casing rule rather than erroring.
var providerDisplayNames = map[string]string{
	"openai":                      "OpenAI",
	"azure":                       "Azure OpenAI",
	"azure_ai":                    "Azure AI",
	"anthropic":                   "Anthropic",
	"bedrock":                     "Amazon Bedrock",
	"bedrock_converse":            "Amazon Bedrock (Converse)",
	"sagemaker":                   "Amazon SageMaker",
	"vertex_ai-chat-models":       "Vertex AI (Chat)",
	"vertex_ai-code-chat-models":  "Vertex AI (Code Chat)",
	"vertex_ai-language-models":   "Vertex AI (Language)",
	"vertex_ai-code-text-models":  "Vertex AI (Code Text)",
	"vertex_ai-text-models":       "Vertex AI (Text)",
	"vertex_ai-anthropic_models":  "Vertex AI (Anthropic)",
	"vertex_ai-llama_models":      "Vertex AI (Llama)",
	"vertex_ai-mistral_models":    "Vertex AI (Mistral)",
	"vertex_ai-ai21_models":       "Vertex AI (AI21)",
	"vertex_ai-embedding-models":  "Vertex AI (Embeddings)",
	"vertex_ai-image-models":      "Vertex AI (Image)",
	"gemini":                      "Google Gemini",
	"palm":                        "Google PaLM",
	"cohere":                      "Cohere",
	"cohere_chat":                 "Cohere (Chat)",
	"mistral":                     "Mistral AI",
	"codestral":                   "Mistral Codestral",
	"deepseek":                    "DeepSeek",
	"groq":                        "Groq",
	"together_ai":                 "Together AI",
	"fireworks_ai":                "Fireworks AI",
	"fireworks_ai-embedding-models": "Fireworks AI (Embeddings)",
	"openrouter":                  "OpenRouter",
	"perplexity":                  "Perplexity",
	"replicate":                   "Replicate",
	"ollama":                      "Ollama",
	"xai":                         "xAI",
	"databricks":                  "Databricks",
	"cerebras":                    "Cerebras",
	"deepinfra":                   "DeepInfra",
	"anyscale":                    "Anyscale",
	"ai21":                        "AI21 Labs",
	"nlp_cloud":                   "NLP Cloud",
	"aleph_alpha":                 "Aleph Alpha",
	"voyage":                      "Voyage AI",
	"jina_ai":                     "Jina AI",
	"nvidia_nim":                  "NVIDIA NIM",
	"cloudflare":                  "Cloudflare Workers AI",
	"friendliai":                  "FriendliAI",
	"text-completion-openai":      "OpenAI (Completions)",
	"text-completion-codestral":   "Mistral Codestral (Completions)",
	"assemblyai":                  "AssemblyAI",
	"snowflake":                   "Snowflake Cortex",
	"sambanova":                   "SambaNova",
}

// FormatProviderName returns the display name for a raw provider key.
// Unknown keys are title-cased per underscore-delimited segment and joined
// with spaces, e.g. "nlp_cloud" -> "Nlp Cloud".
func FormatProviderName(key string) string {
	if name, ok := providerDisplayNames[key]; ok {
		return name
	}
	segs := strings.Split(key, "_")
	for i, s := range segs {
		segs[i] = titleSegment(s)
	}
	return strings.Join(segs, " ")
}

func titleSegment(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
