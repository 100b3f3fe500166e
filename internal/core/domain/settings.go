package domain

import (
	"fmt"
	"strings"
)

// AISettings configures the OpenAI-compatible completion backend.
type AISettings struct {
	BaseURL string `json:"baseUrl"`
	APIKey  string `json:"apiKey"`
	Model   string `json:"model"`
}

// IsConfigured reports whether enough is set to reach a backend.
func (s *AISettings) IsConfigured() bool {
	return s != nil && s.BaseURL != "" && s.Model != ""
}

// Validate checks the settings before they are persisted.
func (s *AISettings) Validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("ai base url is empty: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Model) == "" {
		return fmt.Errorf("ai model is empty: %w", ErrInvalidInput)
	}
	return nil
}

// DefaultSummaryPrompt is the system prompt used for chapter summaries when
// the user has not customized one.
const DefaultSummaryPrompt = "You are a reading assistant. Summarize the " +
	"following chapter in the language it is written in. Keep the summary " +
	"concise and faithful to the text."

// DefaultMinContentLength is the minimum chapter text length, in runes,
// below which summary generation is refused.
const DefaultMinContentLength = 200

// ReaderSettings holds user preferences for the reading surface.
type ReaderSettings struct {
	SummaryPrompt    string `json:"summaryPrompt"`
	MinContentLength int    `json:"minContentLength"`
	Theme            Theme  `json:"theme"`
}

// DefaultReaderSettings returns the settings used before the user saves any.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		SummaryPrompt:    DefaultSummaryPrompt,
		MinContentLength: DefaultMinContentLength,
		Theme:            ThemeLight,
	}
}

// Normalize fills zero values with defaults so stored partial settings stay
// usable.
func (s *ReaderSettings) Normalize() {
	if s.SummaryPrompt == "" {
		s.SummaryPrompt = DefaultSummaryPrompt
	}
	if s.MinContentLength <= 0 {
		s.MinContentLength = DefaultMinContentLength
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		s.Theme = ThemeLight
	}
}
