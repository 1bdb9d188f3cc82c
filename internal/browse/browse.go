// Package browse is an interactive terminal viewer for search results:
// a scrollable list with a per-job detail view.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

type browseModel struct {
	query  string
	jobs   []model.Job
	cursor int
	offset int // first visible list item
	width  int
	height int
	ready  bool

	view           viewState
	detailViewport viewport.Model
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detailViewport = viewport.New(msg.Width-2, msg.Height-4)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewList:
			return m.updateList(msg)
		case viewDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.jobs)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.jobs) > 0 {
			m.view = viewDetail
			m.detailViewport.SetContent(renderDetail(m.jobs[m.cursor], m.width-4))
			m.detailViewport.GotoTop()
		}
	case "o":
		if len(m.jobs) > 0 {
			openInBrowser(m.jobs[m.cursor].ApplyURL)
		}
	}
	m.clampOffset()
	return m, nil
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		openInBrowser(m.jobs[m.cursor].ApplyURL)
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// clampOffset keeps the cursor inside the visible window.
func (m *browseModel) clampOffset() {
	visible := m.visibleItems()
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m browseModel) visibleItems() int {
	// Title bar, status bar and hint line surround the list.
	return (m.height - 3) / jobItemHeight
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.view == viewDetail {
		return m.viewDetailScreen()
	}
	return m.viewListScreen()
}

func (m browseModel) viewListScreen() string {
	var b strings.Builder

	b.WriteString(titleBarStyle.Render(fmt.Sprintf("Jobs — %q (%d results)", m.query, len(m.jobs))))
	b.WriteString("\n")

	if len(m.jobs) == 0 {
		b.WriteString(jobSubtitleStyle.Render("  no results"))
		b.WriteString("\n")
	}

	visible := m.visibleItems()
	end := m.offset + visible
	if end > len(m.jobs) {
		end = len(m.jobs)
	}

	for i := m.offset; i < end; i++ {
		job := m.jobs[i]
		title := fmt.Sprintf("%s — %s", job.Title, job.Company)
		subtitle := fmt.Sprintf("%s · %s · %s", job.Location, job.Remote, salaryLine(job))

		if i == m.cursor {
			b.WriteString(selectedJobTitleStyle.Render("> " + title))
			b.WriteString("\n")
			b.WriteString(selectedJobSubtitleStyle.Render("  " + subtitle))
		} else {
			b.WriteString(jobTitleStyle.Render("  " + title))
			b.WriteString("\n")
			b.WriteString(jobSubtitleStyle.Render("  " + subtitle))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(hintStyle.Render("↑/↓/j/k navigate  enter detail  o open  q quit"))
	return b.String()
}

func (m browseModel) viewDetailScreen() string {
	var b strings.Builder
	b.WriteString(titleBarStyle.Render("Job detail"))
	b.WriteString("\n")
	b.WriteString(m.detailViewport.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ scroll  o open  esc back  q quit"))
	return b.String()
}

func renderDetail(job model.Job, width int) string {
	var b strings.Builder

	b.WriteString(detailTitleStyle.Render(job.Title))
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("Company", job.Company)
	field("Location", job.Location)
	field("Remote", string(job.Remote))
	field("Salary", salaryLine(job))
	if job.DatePosted != nil {
		field("Posted", job.DatePosted.String())
	}
	field("Source", string(job.Source))
	field("Apply", job.ApplyURL)
	field("Careers", job.CareersSearchURL)

	if job.Description != "" {
		b.WriteString("\n")
		b.WriteString(wordWrap(job.Description, width))
		b.WriteString("\n")
	}

	return b.String()
}

func salaryLine(job model.Job) string {
	switch {
	case job.SalaryMin != nil && job.SalaryMax != nil:
		return fmt.Sprintf("%d–%d", *job.SalaryMin, *job.SalaryMax)
	case job.SalaryMax != nil:
		return fmt.Sprintf("up to %d", *job.SalaryMax)
	case job.SalaryMin != nil:
		return fmt.Sprintf("from %d", *job.SalaryMin)
	}
	return "salary unknown"
}

func wordWrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+len(word)+1 > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}

func openInBrowser(url string) {
	if url == "" {
		return
	}
	switch runtime.GOOS {
	case "darwin":
		_ = exec.Command("open", url).Start()
	case "windows":
		_ = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		_ = exec.Command("xdg-open", url).Start()
	}
}

// Run shows the interactive results browser for one search. It blocks
// until the user quits.
func Run(query string, jobs []model.Job) error {
	m := browseModel{
		query: query,
		jobs:  jobs,
		view:  viewList,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
