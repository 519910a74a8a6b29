package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
)

func TestExactQuestions_WellFormed(t *testing.T) {
	entries := ExactQuestions()
	require.NotEmpty(t, entries)

	seen := make(map[string]bool)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Question)
		assert.NotEmpty(t, entry.Response.Text)
		assert.True(t, entry.Response.Topic.Valid(), "question %q", entry.Question)
		assert.False(t, seen[entry.Question], "duplicate question %q", entry.Question)
		seen[entry.Question] = true
	}
}

func TestKeywordRules_WellFormed(t *testing.T) {
	rules := KeywordRules()
	require.NotEmpty(t, rules)

	seen := make(map[int]bool)
	for _, rule := range rules {
		assert.NotEmpty(t, rule.Keywords)
		assert.NotEmpty(t, rule.Text)
		assert.True(t, rule.Topic.Valid())
		assert.False(t, seen[rule.Priority], "duplicate priority %d", rule.Priority)
		seen[rule.Priority] = true
	}
}

func TestByTopic(t *testing.T) {
	for _, topic := range []model.Topic{model.TopicExperience, model.TopicSkills, model.TopicProjects, model.TopicContact} {
		resp := ByTopic(topic)
		assert.Equal(t, topic, resp.Topic)
		assert.NotEmpty(t, resp.Text)
	}

	assert.Equal(t, Default(), ByTopic(model.TopicDefault))
}

func TestSuggestedQuestions(t *testing.T) {
	for _, topic := range model.Topics() {
		assert.NotEmpty(t, SuggestedQuestions(topic))
	}
	// Unknown topics get the default set.
	assert.Equal(t, SuggestedQuestions(model.TopicDefault), SuggestedQuestions(model.Topic("bogus")))
}

func TestDefault(t *testing.T) {
	def := Default()
	assert.Equal(t, model.TopicDefault, def.Topic)
	assert.NotEmpty(t, def.Text)
}
