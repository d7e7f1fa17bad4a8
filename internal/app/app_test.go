package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/llm"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screens/questionnaire"
	"github.com/abhisek/maturiz/internal/store"
)

func testDeps(t *testing.T) (Deps, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return Deps{
		Recorder: runner.New(questionbank.Default(), st.EventRepo(), st.RunRepo(), nil),
		Options:  runner.Options{Organisation: "Acme"},
	}, st
}

func TestRunPlain_AllHighest(t *testing.T) {
	deps, st := testDeps(t)
	var out bytes.Buffer

	err := RunPlain(context.Background(), deps, strings.NewReader(strings.Repeat("5\n", 6)), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[1/12 (0%)]")
	assert.Contains(t, text, "100%  expert")
	assert.NotContains(t, text, "pas été enregistré")

	runs, err := st.RunRepo().ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Acme", runs[0].Organisation)
}

func TestRunPlain_InvalidInputReprompts(t *testing.T) {
	deps, _ := testDeps(t)
	var out bytes.Buffer

	input := "abc\n0\n9\n" + strings.Repeat("5\n", 6)
	require.NoError(t, RunPlain(context.Background(), deps, strings.NewReader(input), &out))

	assert.Equal(t, 3, strings.Count(out.String(), "Réponse invalide"))
}

func TestRunPlain_InputClosed(t *testing.T) {
	deps, _ := testDeps(t)
	var out bytes.Buffer

	err := RunPlain(context.Background(), deps, strings.NewReader("5\n5\n"), &out)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestRunPlain_UnknownFocus(t *testing.T) {
	deps, _ := testDeps(t)
	deps.Options.Focus = []string{"Marketing"}

	err := RunPlain(context.Background(), deps, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, runner.ErrUnknownCategory)
}

func TestRunPlain_Enrichment(t *testing.T) {
	deps, st := testDeps(t)
	provider := llm.NewMockProvider(llm.MockJSON(enrichment.Report{
		Insights:        "Bonne maturité globale.",
		Recommendations: []string{"Maintenir le pilotage"},
		NextSteps:       []string{"Partager les indicateurs"},
	}))
	deps.Enrichment = enrichment.NewService(enrichment.New(provider, enrichment.DefaultConfig()), nil)
	defer deps.Enrichment.Close()

	var out bytes.Buffer
	require.NoError(t, RunPlain(context.Background(), deps, strings.NewReader(strings.Repeat("5\n", 6)), &out))
	assert.Contains(t, out.String(), "Bonne maturité globale.")

	runs, err := st.RunRepo().ListRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].Enrichment)
}

func TestRunPlain_EnrichmentFailure(t *testing.T) {
	deps, _ := testDeps(t)
	provider := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	deps.Enrichment = enrichment.NewService(enrichment.New(provider, enrichment.DefaultConfig()), nil)
	defer deps.Enrichment.Close()

	var out bytes.Buffer
	require.NoError(t, RunPlain(context.Background(), deps, strings.NewReader(strings.Repeat("5\n", 6)), &out))
	assert.Contains(t, out.String(), "Analyse IA indisponible")
	assert.Contains(t, out.String(), "100%  expert")
}

func TestAppModel_Flow(t *testing.T) {
	deps, _ := testDeps(t)
	m := tea.Model(newAppModel(deps))

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.(AppModel).render(), "Diagnostic de maturité")

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	_, ok := m.(AppModel).router.Active().(*questionnaire.QuestionnaireScreen)
	require.True(t, ok, "expected questionnaire screen")
	assert.Contains(t, m.(AppModel).render(), "Question 1/12")
}

func TestAppModel_TooSmall(t *testing.T) {
	deps, _ := testDeps(t)
	m, _ := tea.Model(newAppModel(deps)).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.(AppModel).render(), "Terminal trop petit")
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	deps, _ := testDeps(t)
	_, cmd := tea.Model(newAppModel(deps)).Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
