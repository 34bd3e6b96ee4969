// Package templates renders the per-category instruction prompts sent to the
// generation API. Rendering is pure: the same inputs always produce the same
// prompt.
package templates

import (
	"fmt"
	"strings"

	"github.com/promptforge/prompt-service/internal/models"
)

// Build renders the instruction prompt for a category. Unknown categories
// fall back to the doubt skeleton. An empty role reads as "other" so prompts
// never address "a  background".
func Build(username string, role models.UserRole, category models.PromptCategory, style models.ResponseStyle, inputText, description string) string {
	if role == "" {
		role = models.RoleOther
	}

	switch category {
	case models.CategoryImageGeneration:
		return buildImageGeneration(username, role, style, inputText, description)
	case models.CategoryLearningRoadmap:
		return buildLearningRoadmap(username, role, style, inputText, description)
	case models.CategoryVideoGeneration:
		return buildVideoGeneration(username, role, style, inputText, description)
	case models.CategoryDeepResearch:
		return buildDeepResearch(username, role, style, inputText, description)
	case models.CategoryIdeaExploration:
		return buildIdeaExploration(username, role, style, inputText, description)
	default:
		return buildDoubt(username, role, style, inputText, description)
	}
}

func buildDoubt(username string, role models.UserRole, style models.ResponseStyle, input, description string) string {
	return joinSections(
		fmt.Sprintf("As an AI assistant helping %s (a %s), please provide a %s answer to the following question:", username, role, style),
		"Question: "+input,
		section("Additional context", description),
		fmt.Sprintf("Please ensure your response is %s and tailored to someone with a %s background.", style, role),
	)
}

func buildImageGeneration(username string, role models.UserRole, style models.ResponseStyle, input, description string) string {
	return joinSections(
		fmt.Sprintf("Create a %s image generation prompt based on the following request from %s (a %s):", style, username, role),
		"Request: "+input,
		section("Additional requirements", description),
		"Generate a detailed prompt that includes:\n"+
			"- Visual style and composition\n"+
			"- Lighting and atmosphere\n"+
			"- Color palette suggestions\n"+
			"- Technical specifications\n"+
			"- Art style references",
		fmt.Sprintf("Make it suitable for AI image generation tools and %s in nature.", style),
	)
}

func buildLearningRoadmap(username string, role models.UserRole, style models.ResponseStyle, input, description string) string {
	return joinSections(
		fmt.Sprintf("Create a %s learning roadmap for %s (a %s) on the following topic:", style, username, role),
		"Topic: "+input,
		section("Learning goals", description),
		"Please provide:\n"+
			"- Learning objectives\n"+
			"- Step-by-step progression\n"+
			"- Recommended resources\n"+
			"- Time estimates\n"+
			"- Milestone assessments\n"+
			"- Practical projects",
		fmt.Sprintf("Tailor the roadmap to a %s background and make it %s.", role, style),
	)
}

func buildVideoGeneration(username string, role models.UserRole, style models.ResponseStyle, input, description string) string {
	return joinSections(
		fmt.Sprintf("Develop a %s video concept and script for %s (a %s) based on:", style, username, role),
		"Video idea: "+input,
		section("Additional requirements", description),
		"Please include:\n"+
			"- Video concept overview\n"+
			"- Target audience\n"+
			"- Script outline\n"+
			"- Visual suggestions\n"+
			"- Pacing and structure\n"+
			"- Call-to-action",
		fmt.Sprintf("Make it engaging and %s, suitable for a %s's perspective.", style, role),
	)
}

func buildDeepResearch(username string, role models.UserRole, style models.ResponseStyle, input, description string) string {
	return joinSections(
		fmt.Sprintf("Conduct a %s research analysis for %s (a %s) on:", style, username, role),
		"Research topic: "+input,
		section("Research focus", description),
		"Please provide:\n"+
			"- Research methodology\n"+
			"- Key findings and insights\n"+
			"- Data analysis\n"+
			"- Supporting evidence\n"+
			"- Conclusions and implications\n"+
			"- Further research suggestions",
		fmt.Sprintf("Present the research in a %s manner appropriate for a %s.", style, role),
	)
}

func buildIdeaExploration(username string, role models.UserRole, style models.ResponseStyle, input, description string) string {
	return joinSections(
		fmt.Sprintf("Explore and expand on the following idea for %s (a %s):", username, role),
		"Initial idea: "+input,
		section("Exploration direction", description),
		"Please provide:\n"+
			"- Concept expansion\n"+
			"- Creative variations\n"+
			"- Implementation possibilities\n"+
			"- Potential challenges\n"+
			"- Market opportunities\n"+
			"- Next steps",
		fmt.Sprintf("Make the exploration %s and relevant to a %s's perspective.", style, role),
	)
}

// section renders an optional labeled line; empty values disappear from the
// output entirely instead of leaving a dangling label or blank line.
func section(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func joinSections(sections ...string) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
