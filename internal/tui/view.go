package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/waggle/internal/core/feedback"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	sections := []string{
		m.viewTabBar(),
		m.viewStatusLine(),
		m.viewBody(),
	}
	if card := m.viewPreviewCard(); card != "" {
		sections = append(sections, card)
	}
	if msgs := m.viewMessages(); msgs != "" {
		sections = append(sections, msgs)
	}
	sections = append(sections, m.viewHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) tabLabel(id feedback.TabID) string {
	switch id {
	case feedback.TabFeedback:
		return m.caps.Translator.T("tab.feedback", "Feedback")
	case feedback.TabSummary:
		return m.caps.Translator.T("tab.summary", "Summary")
	default:
		return m.caps.Translator.T("tab.combined", "Combined")
	}
}

func (m *Model) viewTabBar() string {
	var tabs []string
	for _, id := range feedback.AllTabs {
		button, ok := m.hosts.buttons[id]
		if !ok {
			continue
		}
		active, visible := button.state()
		if !visible {
			continue
		}
		style := m.styles.TabInactive
		if active {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(m.tabLabel(id)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) viewStatusLine() string {
	d := m.hosts.bar.snapshot()
	if d.Icon == "" && d.Message == "" {
		return ""
	}
	return m.styles.StatusLine.Render(d.Icon + " " + d.Message)
}

func (m *Model) viewBody() string {
	summary := m.viewSummaryPane()
	input := m.viewInputPane()

	switch m.controller.CurrentTab() {
	case feedback.TabFeedback:
		return input
	case feedback.TabSummary:
		return summary
	}

	if m.hosts.layout.Class() == feedback.LayoutCombinedHorizontal.DisplayClass() && m.width >= 100 {
		return lipgloss.JoinHorizontal(lipgloss.Top, summary, input)
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, input)
}

func (m *Model) viewSummaryPane() string {
	body := m.summaryRendered
	if body == "" {
		body = m.caps.Translator.T("summary.empty", "No summary provided.")
	}
	return m.styles.SummaryPane.Render(body)
}

func (m *Model) viewInputPane() string {
	if !m.hosts.input.Enabled() {
		return m.styles.InputPane.Render(m.caps.Translator.T("feedback.processing", "Submitting..."))
	}
	return m.styles.InputPane.Render(m.input.View())
}

func (m *Model) viewPreviewCard() string {
	content, visible, collapsed, truncated := m.hosts.preview.snapshot()
	if !visible {
		return ""
	}

	title := m.styles.PreviewTitle.Render(m.caps.Translator.T("preview.title", "Last feedback"))
	if collapsed {
		hint := m.styles.PreviewMeta.Render(m.caps.Translator.T("preview.expand_hint", "(ctrl+o to expand)"))
		return m.styles.PreviewCard.Render(title + " " + hint)
	}

	body := content
	if truncated {
		budget := m.opts.PreviewHeight
		if budget <= 0 {
			budget = 10
		}
		lines := strings.Split(content, "\n")
		if len(lines) > budget {
			lines = lines[:budget]
		}
		body = strings.Join(lines, "\n") + "\n" +
			m.styles.PreviewMeta.Render(m.caps.Translator.T("preview.truncated", "... (ctrl+e to show all)"))
	}

	return m.styles.PreviewCard.Render(title + "\n" + body)
}

func (m *Model) viewMessages() string {
	msgs := m.hosts.msgs.Messages()
	if len(msgs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		style := m.styles.MessageInfo
		if msg.isError {
			style = m.styles.MessageError
		}
		lines = append(lines, style.Render(msg.text))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewHelp() string {
	return m.styles.Help.Render(
		"ctrl+d submit • ctrl+y copy last • ctrl+l load last • ctrl+o collapse • ctrl+e expand • esc quit",
	)
}
