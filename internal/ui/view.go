package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hnstories/internal/hn"
	"github.com/five82/hnstories/internal/state"
)

// linesPerStory is the row height of one story in the list.
const linesPerStory = 2

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	styles := m.theme.Styles()

	if m.showHelp {
		return m.renderHelp(styles)
	}

	header := m.renderHeader(styles)
	search := m.renderSearch(styles)
	footer := m.help.View(m.keys)

	used := lipgloss.Height(header) + lipgloss.Height(search) + lipgloss.Height(footer)
	list := m.renderList(styles, max(linesPerStory, m.height-used))

	return lipgloss.JoinVertical(lipgloss.Left, header, search, list, footer)
}

// renderHeader renders the status bar.
func (m Model) renderHeader(styles Styles) string {
	sep := "  "
	parts := []string{styles.Logo.Render("hnstories")}

	snap := m.snapshot
	switch snap.Lifecycle {
	case state.Loading:
		parts = append(parts, m.spinner.View()+styles.WarningText.Render("Loading "+quoted(snap.Query)))
	case state.Failure:
		label := "Request failed"
		if snap.IsOffline() {
			label = "Offline"
		}
		msg := ""
		if snap.LastError != nil {
			msg = truncate(snap.LastError.Error(), max(20, m.width/2))
		}
		parts = append(parts, styles.DangerText.Render(label), styles.MutedText.Render(msg))
	case state.Success:
		parts = append(parts, styles.SuccessText.Render("● "+quoted(snap.Query)))
	default:
		parts = append(parts, styles.MutedText.Render("Idle"))
	}

	parts = append(parts,
		styles.MutedText.Render("Showing:")+" "+
			styles.Text.Render(fmt.Sprintf("%d/%d", len(m.stories), len(snap.Stories))),
	)
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(snap.LastUpdated.Format("15:04:05")))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

func (m Model) renderSearch(styles Styles) string {
	box := styles.Box
	if m.input.Focused() {
		box = styles.FocusBox
	}
	label := styles.AccentText.Render("Search ")
	return box.Width(max(10, m.width-2)).Render(label + m.input.View())
}

// renderList renders the visible window of stories around the selection.
func (m Model) renderList(styles Styles, height int) string {
	if len(m.stories) == 0 {
		msg := "No stories"
		if m.snapshot.Lifecycle == state.Loading {
			msg = "Fetching stories..."
		} else if len(m.snapshot.Stories) > 0 {
			msg = "No stories match " + quoted(m.input.Value())
		}
		return lipgloss.NewStyle().Height(height).Render(styles.MutedText.Render(msg))
	}

	visible := max(1, height/linesPerStory)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(len(m.stories), start+visible)

	rows := make([]string, 0, (end-start)*linesPerStory)
	for i := start; i < end; i++ {
		title, meta := m.renderStory(styles, m.stories[i], i == m.selected)
		rows = append(rows, title, meta)
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(rows, "\n"))
}

func (m Model) renderStory(styles Styles, story hn.Story, selected bool) (string, string) {
	width := max(10, m.width-4)

	title := truncate(story.Title, width)
	if title == "" {
		title = "(untitled)"
	}

	meta := []string{}
	if story.URL != "" {
		meta = append(meta, story.URL)
	}
	if story.Author != "" {
		meta = append(meta, "by "+story.Author)
	}
	meta = append(meta,
		fmt.Sprintf("%d comments", story.Comments),
		fmt.Sprintf("%d points", story.Points),
	)
	metaLine := truncate(strings.Join(meta, " · "), width)

	if selected {
		return styles.Selected.Width(m.width).Render("> " + title),
			styles.Selected.Width(m.width).Render("  " + metaLine)
	}
	return "  " + styles.Title.Render(title), "  " + styles.MutedText.Render(metaLine)
}

func (m Model) renderHelp(styles Styles) string {
	h := m.help
	h.ShowAll = true
	body := styles.Title.Render("Keys") + "\n\n" + h.View(m.keys) + "\n\n" +
		styles.FaintText.Render("press any key to close · theme: "+m.theme.Name)
	return styles.FocusBox.Render(body)
}

func quoted(s string) string {
	return "\"" + s + "\""
}
