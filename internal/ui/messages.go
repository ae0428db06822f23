package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/session"
)

// samplesLoadedMsg carries the picker contents once the sample fetch settles
type samplesLoadedMsg struct {
	samples     []common.SampleProduct
	fromService bool
}

// analysisOutcomeMsg carries the settled outcome of one submission
type analysisOutcomeMsg struct {
	outcome session.Outcome
}

// loadSamplesCmd fetches samples through the controller
func loadSamplesCmd(ctx context.Context, ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		samples, ok := ctrl.LoadSamples(ctx)
		return samplesLoadedMsg{samples: samples, fromService: ok}
	}
}

// analyzeCmd runs a submission to completion. Applying the outcome is left
// to the model so it happens on the update loop.
func analyzeCmd(ctrl *session.Controller, sub *session.Submission) tea.Cmd {
	return func() tea.Msg {
		return analysisOutcomeMsg{outcome: ctrl.Analyze(sub)}
	}
}
