package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/emoji"
	"github.com/yildizm/ingredient-copilot/internal/session"
)

// View renders the copilot screen for the current session state
func (m *Model) View() string {
	if m.quitting {
		return m.renderGoodbyeScreen()
	}
	if !m.ready {
		return m.renderLoadingScreen()
	}

	snap := m.store.Snapshot()
	parts := []string{
		m.renderHeader(),
		m.renderInput(snap),
	}

	switch snap.State {
	case session.StateLoading:
		parts = append(parts, m.renderAnalyzing())
	case session.StateResult:
		parts = append(parts, m.viewport.View())
	case session.StateError:
		parts = append(parts, m.renderError(snap.Error))
	default:
		parts = append(parts, m.renderPicker(snap.Samples))
	}

	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderLoadingScreen() string {
	return m.styles.Title.Render("Starting Ingredient Copilot...")
}

func (m *Model) renderGoodbyeScreen() string {
	return m.styles.Muted.Render("Eat mindfully. "+emoji.GetEmoji("door")) + "\n"
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("copilot") + " Ingredient Copilot")
	subtitle := m.styles.Subtitle.Render("Your AI-native health companion for mindful decisions.")
	return title + "\n" + subtitle + "\n"
}

// renderInput draws the ingredient box and the analyze hint below it
func (m *Model) renderInput(snap session.Snapshot) string {
	style := m.styles.InputBlurred
	if m.focus == focusInput {
		style = m.styles.InputFocused
	}
	box := style.Render(m.input.View())

	var hint string
	switch {
	case snap.State == session.StateLoading:
		hint = m.styles.Muted.Render("Analyzing...")
	case m.input.Value() == "":
		hint = m.styles.Muted.Render("Analyze Ingredients (type or pick a sample first)")
	default:
		hint = m.styles.PickerLabel.Render("ctrl+s") + " " + m.styles.Body.Render("Analyze Ingredients")
	}

	return box + "\n" + hint
}

func (m *Model) renderAnalyzing() string {
	return "\n" + m.spinner.View() + " " + m.styles.Loading.Render(LoadingText) + "\n"
}

// renderPicker draws one card per sample; the highlighted card is marked
// when the picker has focus
func (m *Model) renderPicker(samples []common.SampleProduct) string {
	var b strings.Builder

	label := PickerLabel
	if m.builtinOnly {
		label += " " + m.styles.Notice.Render("(built-in samples)")
	}
	b.WriteString("\n" + m.styles.PickerLabel.Render(label) + "\n")

	if !m.samplesLoaded && len(samples) == 0 {
		b.WriteString(m.styles.Muted.Render("Loading samples...") + "\n")
		return b.String()
	}

	width := max(minWidth, m.width-8)
	for i, s := range samples {
		title := m.styles.CardTitle.Render(emoji.GetEmoji("sample") + " " + s.Name)
		preview := m.styles.Muted.Render(truncate.StringWithTail(oneLine(s.Ingredients), uint(width), "…"))
		card := m.styles.Card
		if m.focus == focusPicker && i == m.selected {
			card = m.styles.CardSelected
		}
		b.WriteString(card.Render(title+"\n"+preview) + "\n")
	}

	return b.String()
}

func (m *Model) renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return m.styles.Error.Render(emoji.GetEmoji("error") + " " + msg)
}

func (m *Model) renderFooter() string {
	return "\n" + m.help.View(m.keys)
}

// renderResult lays out the five analysis sections in display order. Service
// text is shown as-is, never interpreted as markup.
func (m *Model) renderResult(result *common.AnalysisResult) string {
	width := max(minWidth, m.viewport.Width)
	sections := result.Sections()
	blocks := make([]string, 0, len(sections))

	for _, s := range sections {
		label := m.styles.SectionLabel.Render(emoji.ForSection(s.Key) + " " + s.Label)

		var body string
		switch s.Key {
		case common.SectionInferredIntent:
			body = m.styles.Intent.Width(width).Render(`"` + s.Text + `"`)
		case common.SectionRecommendation:
			body = m.styles.Recommendation.Width(width - 2).Render(s.Text)
		default:
			body = m.styles.Body.Width(width).Render(s.Text)
		}

		blocks = append(blocks, label+"\n"+body)
	}

	return strings.Join(blocks, "\n\n")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Run starts the interactive copilot and blocks until the user quits
func Run(ctx context.Context, ctrl *session.Controller, opts Options) error {
	model := NewModel(ctx, ctrl, opts)
	defer ctrl.Store().Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
