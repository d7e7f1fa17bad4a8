package questionbank

import (
	"fmt"
	"strings"
)

// validateQuestions performs all structural checks on the given bank.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	byID := make(map[string]Question, len(questions))

	// Duplicate IDs
	for _, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question with empty ID in category %q", q.Category))
			continue
		}
		if _, dup := byID[q.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
			continue
		}
		byID[q.ID] = q
	}

	mainCategories := make(map[string]bool)
	for _, q := range questions {
		if q.Category == "" {
			errs = append(errs, fmt.Sprintf("question %q has no category", q.ID))
		}
		if !q.Priority.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has invalid priority %q", q.ID, q.Priority))
		}
		errs = append(errs, validateOptions(q, byID)...)

		if !q.IsFollowUp {
			if q.ParentID != "" || q.FollowUpLevel != 0 {
				errs = append(errs, fmt.Sprintf("main question %q must not carry a parent or follow-up level", q.ID))
			}
			mainCategories[q.Category] = true
			continue
		}
		errs = append(errs, validateFollowUp(q, byID)...)
	}

	if len(mainCategories) < MinCategories {
		errs = append(errs, fmt.Sprintf("bank has main questions in %d categories, need at least %d", len(mainCategories), MinCategories))
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateOptions(q Question, byID map[string]Question) []string {
	var errs []string
	if len(q.Options) == 0 {
		return []string{fmt.Sprintf("question %q has no options", q.ID)}
	}
	for i, o := range q.Options {
		prefix := fmt.Sprintf("question %q option %d", q.ID, i)
		if o.Score < 1 || o.Score > 5 {
			errs = append(errs, fmt.Sprintf("%s: score must be in [1, 5], got %d", prefix, o.Score))
		}
		if !o.Action.Valid() {
			errs = append(errs, fmt.Sprintf("%s: invalid action %q", prefix, o.Action))
		}
		for _, id := range o.Triggers {
			if _, ok := byID[id]; !ok {
				errs = append(errs, fmt.Sprintf("%s: triggers nonexistent question %q", prefix, id))
			}
		}
	}
	return errs
}

func validateFollowUp(q Question, byID map[string]Question) []string {
	var errs []string
	if q.FollowUpLevel < 0 || q.FollowUpLevel > 3 {
		errs = append(errs, fmt.Sprintf("follow-up %q: level must be in [1, 3], got %d", q.ID, q.FollowUpLevel))
	}
	if q.ParentID == "" {
		return append(errs, fmt.Sprintf("follow-up %q has no parent", q.ID))
	}
	parent, ok := byID[q.ParentID]
	if !ok {
		return append(errs, fmt.Sprintf("follow-up %q references nonexistent parent %q", q.ID, q.ParentID))
	}
	if parent.Category != q.Category {
		errs = append(errs, fmt.Sprintf("follow-up %q is in category %q but its parent %q is in %q", q.ID, q.Category, parent.ID, parent.Category))
	}
	if want := q.level() - 1; parent.level() != want {
		errs = append(errs, fmt.Sprintf("follow-up %q at level %d needs a parent at level %d, %q is at level %d", q.ID, q.level(), want, parent.ID, parent.level()))
	}
	return errs
}
