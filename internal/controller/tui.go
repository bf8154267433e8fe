package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/synnheal/stepcalc/internal/model"
)

// title line and help line around the viewport
const pagerChrome = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	resultStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with styled output and a scrollable pager for long content.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// DisplaySolution shows the step table of a solution.
func (t *TUI) DisplaySolution(ctx context.Context, input string, kind m.OperationKind, solution m.Solution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("%s: %s", kind, input)

	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(renderSolutionTable(solution))
	b.WriteString(resultStyle.Render("= " + solution.FinalResult))
	b.WriteString("\n")

	return t.show(ctx, title, b.String())
}

// DisplayValidation shows whether the input is well formed.
func (t *TUI) DisplayValidation(ctx context.Context, input string, kind m.OperationKind, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	message := strings.TrimSuffix(validationMessage(input, kind, err), "\n")
	if err != nil {
		message = errorStyle.Render(message)
	} else {
		message = resultStyle.Render(message)
	}

	t.printf("%s\n", message)

	return nil
}

// DisplayOperations shows the supported operation kinds.
func (t *TUI) DisplayOperations(ctx context.Context, kinds []m.OperationKind) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.show(ctx, "Operations", renderOperationsTable(kinds))
}

// DisplayBatchInfo shows concurrency settings of a batch run.
func (t *TUI) DisplayBatchInfo(ctx context.Context, problems int, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.printf("%s\n", helpStyle.Render(strings.TrimSuffix(batchInfoMessage(problems, threads, shardIndex, shardCount), "\n")))
}

// DisplayReports shows the report table and the colored diffs of mismatches.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		t.printf("%s\n", helpStyle.Render("No reports"))
		return nil
	}

	content := renderReportsTable(reports) + colorDiff(renderDiffs(reports))

	return t.show(ctx, fmt.Sprintf("Reports (%d)", len(reports)), content)
}

// DisplayScore shows the share of solved problems.
func (t *TUI) DisplayScore(ctx context.Context, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.printf("%s\n", resultStyle.Render(strings.TrimSuffix(scoreMessage(score), "\n")))
}

// show prints content directly when it fits the terminal and opens the pager otherwise.
func (t *TUI) show(ctx context.Context, title, content string) error {
	out := t.cmd.OutOrStdout()

	width, height := terminalSize(out)
	if height == 0 || lipgloss.Height(content) <= height-pagerChrome {
		_, err := fmt.Fprint(out, content)
		return err
	}

	model := newPagerModel(title, content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.cmd.OutOrStdout(), format, args...)
}

func terminalSize(out io.Writer) (int, int) {
	f, ok := out.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}

func colorDiff(diff string) string {
	lines := strings.Split(diff, "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = helpStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

// pagerModel is the Bubble Tea model scrolling long output.
type pagerModel struct {
	title    string
	viewport viewport.Model
	quitting bool
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerChrome, 1))
	vp.SetContent(content)

	return pagerModel{title: title, viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerChrome, 1)

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			pm.quitting = true
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	help := fmt.Sprintf("%3.f%%  ↑/k ↓/j scroll • g/G top/bottom • q quit", pm.viewport.ScrollPercent()*100)

	return titleStyle.Render(pm.title) + "\n" + pm.viewport.View() + "\n" + helpStyle.Render(help)
}
