package mcpserver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/questionbank"
)

// intArg extracts an integer argument from a tool request.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// listArg splits a comma-separated argument, dropping blanks.
func listArg(req mcp.CallToolRequest, key string) []string {
	var out []string
	for _, part := range strings.Split(req.GetString(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// jsonResult encodes v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func unknownRun(id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("unknown run %q, call diag_start first", id))
}

type optionView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type questionView struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Text     string       `json:"text"`
	FollowUp bool         `json:"followUp"`
	Options  []optionView `json:"options"`
}

// newQuestionView describes a question without its option scores.
func newQuestionView(q questionbank.Question) *questionView {
	v := &questionView{
		ID:       q.ID,
		Category: q.Category,
		Text:     q.Text,
		FollowUp: q.IsFollowUp,
		Options:  make([]optionView, len(q.Options)),
	}
	for i, o := range q.Options {
		v.Options[i] = optionView{Index: i, Text: o.Text}
	}
	return v
}

// currentQuestion returns the pending question of s, or nil.
func currentQuestion(s *diagnostic.Session) *questionView {
	q, ok := s.CurrentQuestion()
	if !ok {
		return nil
	}
	return newQuestionView(q)
}
