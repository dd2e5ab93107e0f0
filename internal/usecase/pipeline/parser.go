package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FactExtraction is the shape the language model is asked to return.
type FactExtraction struct {
	HardFacts []string `json:"hard_facts"`
	SoftFacts []string `json:"soft_facts"`
}

// Parser handles parsing and validation of fact extraction responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseFactExtraction parses the model response into hard and soft fact
// lists. Nil slices in the payload are normalized to empty slices.
func (p *Parser) ParseFactExtraction(content string) (*FactExtraction, error) {
	// Extract JSON from response (models might wrap it in markdown code blocks)
	content = extractJSON(content)

	var result FactExtraction
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.HardFacts == nil {
		result.HardFacts = make([]string, 0)
	}
	if result.SoftFacts == nil {
		result.SoftFacts = make([]string, 0)
	}

	return &result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
