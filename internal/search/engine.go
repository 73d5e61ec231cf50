// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/ripple-tui/internal/model"
)

// =============================================================================
// FOLDING
// =============================================================================

// Fold normalizes a string for case-insensitive comparison.
// NFC normalization first so composed and decomposed forms of the same
// character compare equal, then lowercase.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// ContainsFold reports whether s contains substr, case-insensitively
// and Unicode-normalized. This is the highlight predicate used by the
// message processor.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(Fold(s), Fold(substr))
}

// =============================================================================
// SEARCH ENGINE
// =============================================================================

// Engine indexes a message snapshot for querying. It is rebuilt from
// scratch on each snapshot; queries are read-only and allocation-light.
type Engine struct {
	messages []*model.Message

	// Folded text and sender name, computed once at index time so
	// repeated queries do not re-normalize every message.
	foldedText   []string
	foldedSender []string
}

// NewEngine creates an empty search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Index replaces the engine's snapshot with the given messages. Nil
// entries are skipped, matching how the render pipeline tolerates
// them.
func (e *Engine) Index(messages []*model.Message) {
	e.messages = make([]*model.Message, 0, len(messages))
	e.foldedText = make([]string, 0, len(messages))
	e.foldedSender = make([]string, 0, len(messages))
	for _, m := range messages {
		if m == nil {
			continue
		}
		e.messages = append(e.messages, m)
		e.foldedText = append(e.foldedText, Fold(m.Content))
		e.foldedSender = append(e.foldedSender, Fold(m.Sender.Name))
	}
}

// Count returns the number of indexed messages.
func (e *Engine) Count() int {
	return len(e.messages)
}

// Clear drops the indexed snapshot.
func (e *Engine) Clear() {
	e.messages = nil
	e.foldedText = nil
	e.foldedSender = nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Result is a ranked match. Lower Rank sorts first.
type Result struct {
	ID   string
	Rank int
}

// Rank tiers: an exact-token or prefix hit beats a mid-word substring.
const (
	rankExact     = 0
	rankPrefix    = 1
	rankSubstring = 2
)

// Search returns ids of messages whose text contains the query,
// ranked exact > prefix > substring, ties broken by recency (later
// index first within a tier, matching how chat search is read).
func (e *Engine) Search(query string) []Result {
	q := Fold(query)
	if q == "" {
		return nil
	}

	var results []Result
	// Newest first within each tier.
	for i := len(e.messages) - 1; i >= 0; i-- {
		text := e.foldedText[i]
		idx := strings.Index(text, q)
		if idx < 0 {
			continue
		}
		rank := rankSubstring
		if text == q {
			rank = rankExact
		} else if idx == 0 || (idx > 0 && text[idx-1] == ' ') {
			rank = rankPrefix
		}
		results = append(results, Result{ID: e.messages[i].ID, Rank: rank})
	}

	sortStableByRank(results)
	return results
}

// MultiField returns ids matching the query in either message text or
// sender name. Used by the search bar: typing a name finds a person's
// messages without a separate mode.
func (e *Engine) MultiField(query string) []Result {
	q := Fold(query)
	if q == "" {
		return nil
	}

	var results []Result
	for i := len(e.messages) - 1; i >= 0; i-- {
		if strings.Contains(e.foldedText[i], q) || strings.Contains(e.foldedSender[i], q) {
			results = append(results, Result{ID: e.messages[i].ID, Rank: rankSubstring})
		}
	}
	return results
}

// FuzzySearch returns ids of messages containing a word within
// maxDistance edits of the query, best matches first.
func (e *Engine) FuzzySearch(query string, maxDistance int) []Result {
	q := Fold(query)
	if q == "" || maxDistance < 0 {
		return nil
	}

	var results []Result
	for i, text := range e.foldedText {
		for _, word := range strings.Fields(text) {
			d := levenshtein(word, q)
			if d <= maxDistance {
				results = append(results, Result{ID: e.messages[i].ID, Rank: d})
				break
			}
		}
	}

	sortStableByRank(results)
	return results
}

// WildcardSearch returns ids of messages whose full text matches the
// pattern, where '*' matches any run and '?' any single byte of the
// folded text.
func (e *Engine) WildcardSearch(pattern string) []string {
	p := Fold(pattern)
	if p == "" {
		return nil
	}

	var ids []string
	for i, text := range e.foldedText {
		if wildcardMatch(text, p) {
			ids = append(ids, e.messages[i].ID)
		}
	}
	return ids
}

// SearchBySender returns ids of messages whose sender name contains
// the query.
func (e *Engine) SearchBySender(query string) []string {
	q := Fold(query)
	if q == "" {
		return nil
	}

	var ids []string
	for i, sender := range e.foldedSender {
		if strings.Contains(sender, q) {
			ids = append(ids, e.messages[i].ID)
		}
	}
	return ids
}

// =============================================================================
// MATCHING PRIMITIVES
// =============================================================================

// levenshtein computes the edit distance between two strings using a
// two-row rolling table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// wildcardMatch reports whether str matches pattern, where '*' matches
// any run of bytes and '?' matches exactly one. Iterative backtracking
// over the last-seen star, linear in practice.
func wildcardMatch(str, pattern string) bool {
	s, p := 0, 0
	starIdx, matchIdx := -1, 0

	for s < len(str) {
		if p < len(pattern) && (pattern[p] == '?' || pattern[p] == str[s]) {
			s++
			p++
		} else if p < len(pattern) && pattern[p] == '*' {
			starIdx = p
			matchIdx = s
			p++
		} else if starIdx >= 0 {
			p = starIdx + 1
			matchIdx++
			s = matchIdx
		} else {
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}

	return p == len(pattern)
}

// sortStableByRank orders results ascending by rank, preserving the
// recency order within equal ranks.
func sortStableByRank(results []Result) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Rank < results[j-1].Rank; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
