package questionbank

import (
	"strings"
	"testing"
)

func TestValidate_Minimal(t *testing.T) {
	if err := validateQuestions(sixCategories()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Question) []Question
		want   string
	}{
		{
			name: "duplicate id",
			mutate: func(qs []Question) []Question {
				qs[1].ID = qs[0].ID
				return qs
			},
			want: "duplicate question ID",
		},
		{
			name: "no options",
			mutate: func(qs []Question) []Question {
				qs[0].Options = nil
				return qs
			},
			want: "has no options",
		},
		{
			name: "score out of range",
			mutate: func(qs []Question) []Question {
				qs[0].Options[1].Score = 6
				return qs
			},
			want: "score must be in [1, 5]",
		},
		{
			name: "zero score",
			mutate: func(qs []Question) []Question {
				qs[0].Options[0].Score = 0
				return qs
			},
			want: "score must be in [1, 5]",
		},
		{
			name: "bad action",
			mutate: func(qs []Question) []Question {
				qs[0].Options[0].Action = "jump"
				return qs
			},
			want: "invalid action",
		},
		{
			name: "bad priority",
			mutate: func(qs []Question) []Question {
				qs[0].Priority = "urgent"
				return qs
			},
			want: "invalid priority",
		},
		{
			name: "unknown trigger",
			mutate: func(qs []Question) []Question {
				qs[0].Options[0].Triggers = []string{"ghost"}
				return qs
			},
			want: "triggers nonexistent question",
		},
		{
			name: "follow-up without parent",
			mutate: func(qs []Question) []Question {
				return append(qs, followUpOf("", "Cat 1", 1))
			},
			want: "has no parent",
		},
		{
			name: "follow-up with unknown parent",
			mutate: func(qs []Question) []Question {
				return append(qs, followUpOf("ghost", "Cat 1", 1))
			},
			want: "nonexistent parent",
		},
		{
			name: "follow-up level out of range",
			mutate: func(qs []Question) []Question {
				return append(qs, followUpOf("c1", "Cat 1", 4))
			},
			want: "level must be in [1, 3]",
		},
		{
			name: "follow-up level skips a level",
			mutate: func(qs []Question) []Question {
				return append(qs, followUpOf("c1", "Cat 1", 2))
			},
			want: "needs a parent at level 1",
		},
		{
			name: "follow-up in another category",
			mutate: func(qs []Question) []Question {
				return append(qs, followUpOf("c1", "Cat 2", 1))
			},
			want: "but its parent",
		},
		{
			name: "main question with parent",
			mutate: func(qs []Question) []Question {
				qs[1].ParentID = "c1"
				return qs
			},
			want: "must not carry a parent",
		},
		{
			name: "too few categories",
			mutate: func(qs []Question) []Question {
				return qs[:MinCategories-1]
			},
			want: "need at least 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestions(tt.mutate(sixCategories()))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	qs := sixCategories()
	qs[0].Options = nil
	qs[1].Priority = "urgent"
	qs = append(qs, followUpOf("ghost", "Cat 1", 1))

	err := validateQuestions(qs)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"has no options", "invalid priority", "nonexistent parent"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("combined error missing %q: %v", want, err)
		}
	}
}

func TestNew_RejectsInvalid(t *testing.T) {
	if _, err := New(sixCategories()[:2]); err == nil {
		t.Error("expected error for bank with two categories")
	}
}

func followUpOf(parent, category string, level int) Question {
	return Question{
		ID:            "fu",
		Category:      category,
		Text:          "follow-up",
		Priority:      PriorityMedium,
		IsFollowUp:    true,
		ParentID:      parent,
		FollowUpLevel: level,
		Options:       []Option{{Text: "a", Score: 2, Action: ActionContinue}},
	}
}
