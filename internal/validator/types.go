package validator

import (
	"crossmatch/internal/llm"
)

// Result represents the structured LLM verdict.
type Result struct {
	ValidResolution  bool   `json:"ValidResolution"`
	ResolutionReason string `json:"ResolutionReason"`
}

// Config controls the validator behavior.
type Config struct {
	LLMClient    *llm.Client
	SystemPrompt string
}
