package models

import (
	"strings"
	"time"
)

type PromptCategory string

const (
	CategoryDoubt           PromptCategory = "doubt"
	CategoryImageGeneration PromptCategory = "image_generation"
	CategoryLearningRoadmap PromptCategory = "learning_roadmap"
	CategoryVideoGeneration PromptCategory = "video_generation"
	CategoryDeepResearch    PromptCategory = "deep_research"
	CategoryIdeaExploration PromptCategory = "idea_exploration"
)

func (c PromptCategory) IsValid() bool {
	switch c {
	case CategoryDoubt, CategoryImageGeneration, CategoryLearningRoadmap,
		CategoryVideoGeneration, CategoryDeepResearch, CategoryIdeaExploration:
		return true
	}
	return false
}

// DisplayName renders the category for user-facing titles,
// e.g. "image_generation" -> "Image Generation".
func (c PromptCategory) DisplayName() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type ResponseStyle string

const (
	StyleConcise   ResponseStyle = "concise"
	StyleDetailed  ResponseStyle = "detailed"
	StyleCreative  ResponseStyle = "creative"
	StyleFormal    ResponseStyle = "formal"
	StyleTechnical ResponseStyle = "technical"
)

func (s ResponseStyle) IsValid() bool {
	switch s {
	case StyleConcise, StyleDetailed, StyleCreative, StyleFormal, StyleTechnical:
		return true
	}
	return false
}

type Prompt struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	UserID uint  `json:"user" gorm:"not null;index"`
	User   *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	Title         string         `json:"title" gorm:"not null;size:200"`
	InputText     string         `json:"input_text" gorm:"type:text;not null"`
	Category      PromptCategory `json:"category" gorm:"not null;size:20;index"`
	ResponseStyle ResponseStyle  `json:"response_style" gorm:"not null;size:20"`
	Description   string         `json:"description" gorm:"type:text"`

	// Derived columns. GeneratedPrompt is recomputed server-side whenever a
	// template input changes; AIResponse is written only by execution.
	GeneratedPrompt string `json:"generated_prompt" gorm:"type:text"`
	AIResponse      string `json:"ai_response" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// IsExecuted reports whether the prompt has been run against the generation
// API at least once.
func (p *Prompt) IsExecuted() bool {
	return p.AIResponse != ""
}
