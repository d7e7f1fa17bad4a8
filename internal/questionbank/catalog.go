package questionbank

import (
	"fmt"
	"sort"

	"golang.org/x/mod/semver"
)

// MinCategories is the smallest number of categories with main questions a
// bank may have. It equals the answer floor of a diagnostic session: a
// session answers at least one question per category before it can run
// out of questions.
const MinCategories = 6

// DefaultVersion is the content version of the compiled-in bank.
const DefaultVersion = "v1.2.0"

// Catalog is a validated, read-only question bank with precomputed indices.
// Build one at startup and hand it to whoever starts sessions.
type Catalog struct {
	version    string
	questions  []Question
	byID       map[string]int
	followUps  map[string][]int
	categories []string
	main       []int
}

// CatalogOption configures New.
type CatalogOption func(*Catalog)

// WithVersion stamps the catalog with a semantic version (e.g. "v1.3.0").
func WithVersion(v string) CatalogOption {
	return func(c *Catalog) { c.version = v }
}

// New validates questions and builds a catalog over a private copy of them.
func New(questions []Question, opts ...CatalogOption) (*Catalog, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	c := &Catalog{version: DefaultVersion}
	for _, opt := range opts {
		opt(c)
	}
	if !semver.IsValid(c.version) {
		return nil, fmt.Errorf("invalid catalog version %q", c.version)
	}

	cloned := make([]Question, len(questions))
	for i, q := range questions {
		cloned[i] = q.clone()
	}
	c.index(cloned)
	return c, nil
}

// Default returns a fresh catalog over the compiled-in procurement bank.
// The seed data is validated by tests, so a failure here is a programming
// error.
func Default() *Catalog {
	c, err := New(seedQuestions())
	if err != nil {
		panic(fmt.Sprintf("questionbank: built-in catalog is invalid: %v", err))
	}
	return c
}

// index builds all lookup tables over questions, which the catalog owns.
func (c *Catalog) index(questions []Question) {
	c.questions = questions
	c.byID = make(map[string]int, len(questions))
	c.followUps = make(map[string][]int)
	c.categories = nil
	c.main = nil

	seen := make(map[string]bool)
	for i, q := range questions {
		c.byID[q.ID] = i
		if !seen[q.Category] {
			seen[q.Category] = true
			c.categories = append(c.categories, q.Category)
		}
		if q.IsFollowUp {
			c.followUps[q.ParentID] = append(c.followUps[q.ParentID], i)
			continue
		}
		c.main = append(c.main, i)
	}

	// Stable: equal priorities keep catalog order.
	sort.SliceStable(c.main, func(i, j int) bool {
		return questions[c.main[i]].Priority.rank() < questions[c.main[j]].Priority.rank()
	})
}

// Version returns the catalog content version.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// All returns every question in catalog order.
func (c *Catalog) All() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.clone()
	}
	return out
}

// FindByID returns the question with the given id.
func (c *Catalog) FindByID(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i].clone(), true
}

// FollowUpsOf returns the follow-ups of parentID in catalog order.
// A level of 0 selects follow-ups whose level is absent or 1; any other
// level selects exactly that level.
func (c *Catalog) FollowUpsOf(parentID string, level int) []Question {
	var out []Question
	for _, i := range c.followUps[parentID] {
		q := c.questions[i]
		switch {
		case level == 0 && q.level() != 1:
			continue
		case level != 0 && q.level() != level:
			continue
		}
		out = append(out, q.clone())
	}
	return out
}

// MainQuestions returns the non-follow-up questions ordered by priority,
// high first, ties in catalog order.
func (c *Catalog) MainQuestions() []Question {
	out := make([]Question, len(c.main))
	for i, idx := range c.main {
		out[i] = c.questions[idx].clone()
	}
	return out
}

// Categories returns category names in order of first appearance.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// ByCategory returns the questions of one category in catalog order.
func (c *Catalog) ByCategory(category string) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Category == category {
			out = append(out, q.clone())
		}
	}
	return out
}

// Reprioritize returns a new catalog in which the main questions of each
// category named in focus carry the given priority. The receiver is left
// untouched. Unknown categories are ignored.
func (c *Catalog) Reprioritize(focus map[string]Priority) *Catalog {
	derived := make([]Question, len(c.questions))
	for i, q := range c.questions {
		q = q.clone()
		if p, ok := focus[q.Category]; ok && !q.IsFollowUp && p.Valid() {
			q.Priority = p
		}
		derived[i] = q
	}

	out := &Catalog{version: c.version}
	out.index(derived)
	return out
}
