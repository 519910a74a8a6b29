// Package resolver turns free-text user input into a canned response.
//
// Resolution is pure and total: it never fails, never blocks, and always
// returns a response. Three tiers run in strict order: exact question match,
// keyword-weighted topic scoring, then the default response.
package resolver

import (
	"sort"
	"strings"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/catalog"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
)

// Strategy names which tier produced a resolution, for metrics and logging.
type Strategy string

const (
	StrategyExact   Strategy = "exact"
	StrategyKeyword Strategy = "keyword"
	StrategyDefault Strategy = "default"
)

// minContainmentLen guards the substring tier against trivial matches:
// the shorter of the two compared strings must be longer than this.
const minContainmentLen = 5

// Engine resolves raw user text against the static catalogs.
type Engine struct {
	exact []catalog.ExactEntry
	rules []catalog.KeywordRule
	def   catalog.Response
}

// New creates an engine over the built-in catalogs.
func New() *Engine {
	return NewWithCatalog(catalog.ExactQuestions(), catalog.KeywordRules(), catalog.Default())
}

// NewWithCatalog creates an engine over explicit catalogs. Exact entries keep
// their given order; keyword rules are sorted by priority.
func NewWithCatalog(exact []catalog.ExactEntry, rules []catalog.KeywordRule, def catalog.Response) *Engine {
	sorted := make([]catalog.KeywordRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	return &Engine{
		exact: exact,
		rules: sorted,
		def:   def,
	}
}

// Resolve returns the canned response for raw user text.
func (e *Engine) Resolve(raw string) catalog.Response {
	resp, _ := e.ResolveWithStrategy(raw)
	return resp
}

// ResolveWithStrategy resolves raw text and reports which tier answered.
func (e *Engine) ResolveWithStrategy(raw string) (catalog.Response, Strategy) {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	if resp, ok := e.matchExact(trimmed, lower); ok {
		return resp, StrategyExact
	}

	if resp, ok := e.matchKeywords(lower); ok {
		return resp, StrategyKeyword
	}

	return e.def, StrategyDefault
}

// matchExact checks the exact-question catalog: first a case-insensitive key
// match, then bidirectional substring containment. The first entry in catalog
// order wins a containment tie.
func (e *Engine) matchExact(trimmed, lower string) (catalog.Response, bool) {
	for _, entry := range e.exact {
		if strings.EqualFold(entry.Question, trimmed) {
			return entry.Response, true
		}
	}

	for _, entry := range e.exact {
		key := strings.ToLower(entry.Question)
		if !strings.Contains(key, lower) && !strings.Contains(lower, key) {
			continue
		}
		if min(len(key), len(lower)) > minContainmentLen {
			return entry.Response, true
		}
	}

	return catalog.Response{}, false
}

// matchKeywords scores every rule by how many of its keywords occur in the
// lowercased input. Each keyword counts at most once. The strictly highest
// score wins; equal scores go to the lower-priority-number rule because rules
// are pre-sorted and only a strictly greater score displaces the leader.
func (e *Engine) matchKeywords(lower string) (catalog.Response, bool) {
	var best catalog.KeywordRule
	bestScore := 0

	for _, rule := range e.rules {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = rule
			bestScore = score
		}
	}

	if bestScore == 0 {
		return catalog.Response{}, false
	}
	return catalog.Response{Text: best.Text, Topic: best.Topic}, true
}

// ClassifyTopic tags a remote completion with a topic: the reply text is
// checked against the keyword rules first, then the user's message, then the
// default topic. Used only for selecting suggested follow-up questions.
func (e *Engine) ClassifyTopic(reply, message string) model.Topic {
	for _, text := range []string{strings.ToLower(reply), strings.ToLower(message)} {
		for _, rule := range e.rules {
			for _, kw := range rule.Keywords {
				if strings.Contains(text, kw) {
					return rule.Topic
				}
			}
		}
	}
	return model.TopicDefault
}
