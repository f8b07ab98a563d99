package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/logfold/internal/table"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderColumnHeader())
		b.WriteString("\n")
		b.WriteString(m.renderTable())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the status bar with run information.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("logfold", styles.Logo)}

	snap := m.snapshot
	switch {
	case snap.Busy:
		stage := ternary(snap.Stage == "", "starting", snap.Stage)
		parts = append(parts, bg.Render("● "+stage, styles.WarningText.Bold(true)))
	case snap.LastError != nil:
		label := "● FAILED"
		if snap.IsStale() {
			label = fmt.Sprintf("● STALE (%d failed)", snap.ConsecutiveFailures)
		}
		parts = append(parts, bg.Render(label, styles.DangerText))
	case snap.HasTable:
		parts = append(parts, bg.Render("● READY", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● IDLE", styles.MutedText))
	}

	if snap.HasTable {
		parts = append(parts,
			bg.Render(fmt.Sprintf("%d rows", snap.Counts.Rows), styles.Text),
			bg.Render(fmt.Sprintf("%d visible", snap.Counts.Visible), styles.MutedText),
			bg.Render(fmt.Sprintf("%d groups", snap.Counts.Groups), styles.MutedText),
		)
	}

	parts = append(parts, bg.Render(m.viewLabel(), styles.AccentText))

	if !compact && len(snap.Files) > 0 {
		parts = append(parts, bg.Render(m.formatFiles(), styles.FaintText))
	}
	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) viewLabel() string {
	if m.view == table.Collapsed {
		return "COLLAPSED"
	}
	return "FULL"
}

// formatFiles names the input files, shortening long lists.
func (m Model) formatFiles() string {
	files := m.snapshot.Files
	first := filepath.Base(files[0])
	if len(files) == 1 {
		return truncateMiddle(first, 40)
	}
	return fmt.Sprintf("%s +%d", truncateMiddle(first, 30), len(files)-1)
}

// formatTimestamp formats the last completion time with relative indicator.
func (m Model) formatTimestamp() string {
	done := m.snapshot.LastCompleted
	if done.IsZero() {
		return ""
	}
	since := time.Since(done)
	if since < time.Second {
		return done.Format("15:04:05") + " (now)"
	}
	return fmt.Sprintf("%s (%s ago)", done.Format("15:04:05"), humanizeDuration(since))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.showDetail {
		commands = []cmd{
			{"j/k", "Scroll"},
			{"c", "Copy"},
			{"esc", "Close"},
		}
	} else {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Expand"},
			{"v", ternary(m.view == table.Collapsed, "Full", "Collapsed")},
			{"/", "Search"},
			{"c", "Copy"},
			{"r", "Reload"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFooter shows the search prompt, a transient notice, or the search
// status, in that order of precedence.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	if m.searching {
		return styles.Footer.Width(m.width).MaxWidth(m.width).Render(m.search.View())
	}
	if m.flash != "" && time.Now().Before(m.flashUntil) {
		style := styles.SuccessText
		if m.flashErr {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).MaxWidth(m.width).Render(style.Render(truncate(m.flash, m.width)))
	}

	status := m.searchStatus()
	if status == "" && m.snapshot.LastError != nil {
		return styles.Footer.Width(m.width).MaxWidth(m.width).Render(
			styles.DangerText.Render(truncate(m.snapshot.LastError.Error(), m.width)))
	}
	if status == "" && m.rows.Len() > 0 {
		status = fmt.Sprintf("row %d of %d", m.cursor+1, m.rows.Len())
	}
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(status)
}
