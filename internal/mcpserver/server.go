// Package mcpserver exposes diagnostic runs as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/runner"
)

// Deps are the collaborators the tools share.
type Deps struct {
	Recorder *runner.Recorder

	// Enrichment serves diag_result with enrich=true. Nil disables it.
	Enrichment *enrichment.Service

	Logger *zap.Logger
}

// New creates the MCP server with all diagnostic tools registered.
func New(version string, deps Deps) *server.MCPServer {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := NewRegistry()

	s := server.NewMCPServer(
		"maturiz",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	startTool := NewStartTool(deps.Recorder, registry)
	s.AddTool(startTool.Definition(), startTool.Handle)

	answerTool := NewAnswerTool(deps.Recorder, registry, logger)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	progressTool := NewProgressTool(registry)
	s.AddTool(progressTool.Definition(), progressTool.Handle)

	resultTool := NewResultTool(deps.Recorder, registry, deps.Enrichment, logger)
	s.AddTool(resultTool.Definition(), resultTool.Handle)

	return s
}

// Serve runs s on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const serverInstructions = `Maturiz runs an adaptive procurement maturity diagnostic.

1. Call diag_start (optionally with focus categories) to get a run id and the first question.
2. Present each question and its options to the user, then call diag_answer with the chosen zero-based option index.
3. Weak answers may add follow-up questions, strong ones may skip the rest of a category. Always answer the question returned last.
4. When diag_answer reports completed, call diag_result. Pass enrich=true for an AI-written analysis in French.

Questions and results are in French.`
