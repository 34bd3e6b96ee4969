package templates

import (
	"strings"
	"testing"

	"github.com/promptforge/prompt-service/internal/models"
)

var allCategories = []models.PromptCategory{
	models.CategoryDoubt,
	models.CategoryImageGeneration,
	models.CategoryLearningRoadmap,
	models.CategoryVideoGeneration,
	models.CategoryDeepResearch,
	models.CategoryIdeaExploration,
}

func TestBuildInterpolatesUserAndStyle(t *testing.T) {
	for _, category := range allCategories {
		t.Run(string(category), func(t *testing.T) {
			got := Build("alice", models.RoleDeveloper, category, models.StyleConcise, "how do goroutines work", "")

			for _, want := range []string{"alice", "developer", "concise", "how do goroutines work"} {
				if !strings.Contains(got, want) {
					t.Errorf("prompt missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestBuildDescriptionLine(t *testing.T) {
	tests := []struct {
		category models.PromptCategory
		label    string
	}{
		{models.CategoryDoubt, "Additional context:"},
		{models.CategoryImageGeneration, "Additional requirements:"},
		{models.CategoryLearningRoadmap, "Learning goals:"},
		{models.CategoryVideoGeneration, "Additional requirements:"},
		{models.CategoryDeepResearch, "Research focus:"},
		{models.CategoryIdeaExploration, "Exploration direction:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			with := Build("bob", models.RoleStudent, tt.category, models.StyleDetailed, "input", "extra detail")
			if !strings.Contains(with, tt.label+" extra detail") {
				t.Errorf("description line missing:\n%s", with)
			}

			without := Build("bob", models.RoleStudent, tt.category, models.StyleDetailed, "input", "")
			if strings.Contains(without, tt.label) {
				t.Errorf("empty description should omit the %q line:\n%s", tt.label, without)
			}
			if strings.Contains(without, "\n\n\n") {
				t.Errorf("omitted description left a blank gap:\n%s", without)
			}
		})
	}
}

func TestBuildUnknownCategoryFallsBackToDoubt(t *testing.T) {
	got := Build("carol", models.RoleWriter, models.PromptCategory("unknown"), models.StyleFormal, "question", "context")
	want := Build("carol", models.RoleWriter, models.CategoryDoubt, models.StyleFormal, "question", "context")

	if got != want {
		t.Errorf("unknown category did not fall back to doubt:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildEmptyRoleReadsAsOther(t *testing.T) {
	got := Build("dave", "", models.CategoryDoubt, models.StyleConcise, "question", "")
	if !strings.Contains(got, "(a other)") {
		t.Errorf("empty role not normalized:\n%s", got)
	}
	if strings.Contains(got, "(a )") {
		t.Errorf("prompt addresses an empty role:\n%s", got)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := Build("erin", models.RoleResearcher, models.CategoryDeepResearch, models.StyleTechnical, "topic", "focus")
	b := Build("erin", models.RoleResearcher, models.CategoryDeepResearch, models.StyleTechnical, "topic", "focus")
	if a != b {
		t.Error("Build is not deterministic")
	}
}
