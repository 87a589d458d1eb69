package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/task"
)

// dashPane holds the last computed summary. It is recomputed from a fresh
// wholesale fetch on every activation, never maintained incrementally.
type dashPane struct {
	sum     task.Summary
	loaded  bool
	seq     int
	loading bool
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.PaneNext:
		return m.switchPane(m.nextPane())
	case m.cfg.Keys.Logout:
		return m.logout()
	case m.cfg.Keys.Refresh:
		return m.switchPane(paneDashboard)
	}
	return m, nil
}

func (m Model) applySummaryLoaded(msg summaryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.dash.seq {
		return m, nil
	}
	m.dash.loading = false
	if msg.err != nil {
		m.status = errorStatus("Load failed", msg.err)
		return m, nil
	}
	m.dash.sum = msg.sum
	m.dash.loaded = true
	m.status = "Dashboard updated"
	return m, nil
}

func (m Model) renderDashboard() string {
	if !m.dash.loaded {
		return "Loading..."
	}
	sum := m.dash.sum

	cards := []string{
		summaryCard("Total", sum.Total),
		summaryCard("Done", sum.Completed),
		summaryCard("Pending", sum.Pending),
		summaryCard("Trash", sum.TrashCount),
		summaryCard("Today", sum.TodayCount),
		summaryCard("This week", sum.WeekCount),
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n")
	if len(sum.Categories) == 0 {
		b.WriteString(faintStyle.Render("  none"))
		b.WriteString("\n")
	} else {
		labels := make([]string, 0, len(sum.Categories))
		for label := range sum.Categories {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			b.WriteString(fmt.Sprintf("  %-16s %d\n", label, sum.Categories[label]))
		}
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Upcoming deadlines"))
	b.WriteString("\n")
	if len(sum.Upcoming) == 0 {
		b.WriteString(faintStyle.Render("  none"))
		b.WriteString("\n")
	} else {
		now := time.Now()
		for _, t := range sum.Upcoming {
			due := t.DueDate
			if dueTime, ok := t.DueTime(); ok {
				due = urgencyStyle(task.ClassifyUrgency(dueTime, now)).Render(dueTime.Format("2006-01-02"))
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", due, t.Title))
		}
	}
	return b.String()
}

func summaryCard(label string, n int) string {
	return cardStyle.Render(fmt.Sprintf("%s\n%d", label, n))
}
