// internal/tui/form.go
//
// Interactive review cost calculator. Every keystroke re-reads all six
// fields and recomputes the estimate, so the result cards always reflect
// what is on screen.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codeGROOVE-dev/reviewcost/pkg/cost"
)

// field indexes, in focus order
const (
	fieldEmployees = iota
	fieldManagerSalary
	fieldEmployeeSalary
	fieldManagerHours
	fieldEmployeeHours
	fieldAdminHours
	fieldCount
)

const defaultWidth = 100

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	helperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")).Italic(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	calloutStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#F7B801")).Padding(0, 1)
)

type field struct {
	label  string
	helper string
	input  textinput.Model
}

// Form is the bubbletea model for the calculator.
type Form struct {
	fields    []field
	focus     int
	width     int
	breakdown cost.Breakdown
}

// NewForm builds a form prefilled with the given inputs.
func NewForm(in cost.Inputs) *Form {
	specs := []struct {
		label  string
		helper string
		value  float64
	}{
		fieldEmployees:      {label: "Number of Employees", value: in.Employees},
		fieldManagerSalary:  {label: "Average Manager Annual Salary ($)", value: in.ManagerSalary},
		fieldEmployeeSalary: {label: "Average Employee Annual Salary ($)", value: in.EmployeeSalary},
		fieldManagerHours:   {label: "Hours Spent by Manager (per employee reviewed)", helper: "Industry average: 17 hours", value: in.ManagerHours},
		fieldEmployeeHours:  {label: "Hours Spent by Employee (preparation and meeting)", helper: "Industry average: 5 hours", value: in.EmployeeHours},
		fieldAdminHours:     {label: "Administrative Hours (HR, systems, follow-up)", helper: "Industry average: 2 hours", value: in.AdminHours},
	}

	f := &Form{fields: make([]field, fieldCount)}
	for i, s := range specs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 16
		ti.Width = 18
		ti.SetValue(formatValue(s.value))
		f.fields[i] = field{label: s.label, helper: s.helper, input: ti}
	}
	f.fields[0].input.Focus()
	f.recalculate()
	return f
}

// Init starts the cursor blinking.
func (*Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles navigation keys and forwards everything else to the focused field.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		return f, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return f, tea.Quit
		case "tab", "down", "enter":
			return f, f.moveFocus(1)
		case "shift+tab", "up":
			return f, f.moveFocus(-1)
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	f.recalculate()
	return f, cmd
}

// Inputs returns the clamped values currently on screen.
func (f *Form) Inputs() cost.Inputs {
	value := func(i int) float64 { return cost.ParseInput(f.fields[i].input.Value()) }
	return cost.Inputs{
		Employees:      value(fieldEmployees),
		ManagerSalary:  value(fieldManagerSalary),
		EmployeeSalary: value(fieldEmployeeSalary),
		ManagerHours:   value(fieldManagerHours),
		EmployeeHours:  value(fieldEmployeeHours),
		AdminHours:     value(fieldAdminHours),
	}
}

// Breakdown returns the estimate for the values currently on screen.
func (f *Form) Breakdown() cost.Breakdown {
	return f.breakdown
}

func (f *Form) recalculate() {
	f.breakdown = cost.Detail(f.Inputs())
}

func (f *Form) moveFocus(delta int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.fields[f.focus].input.Focus()
}

// View renders the form and the result cards.
func (f *Form) View() string {
	width := f.width
	if width <= 0 {
		width = defaultWidth
	}
	column := max(30, width/2-2)

	left := f.renderSection("Organization Parameters", fieldEmployees, fieldEmployeeSalary, column)
	right := f.renderSection("Time Investment", fieldManagerHours, fieldAdminHours, column)

	var params string
	if width < 70 {
		params = lipgloss.JoinVertical(lipgloss.Left, left, right)
	} else {
		params = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Performance Review Cost Calculator"),
		hintStyle.Render("Calculate the true organizational cost of your annual performance review process"),
		"",
		params,
		f.renderResults(width),
		"",
		hintStyle.Render("tab/↓ next · shift+tab/↑ previous · esc quit"),
	)
}

func (f *Form) renderSection(title string, first, last, width int) string {
	lines := []string{sectionStyle.Render(title)}
	for i := first; i <= last; i++ {
		fl := f.fields[i]
		label := labelStyle.Render(fl.label)
		if i == f.focus {
			label = activeStyle.Render(fl.label)
		}
		lines = append(lines, label, fl.input.View())
		if fl.helper != "" {
			lines = append(lines, helperStyle.Render(fl.helper))
		}
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (f *Form) renderResults(width int) string {
	b := f.breakdown
	cardWidth := max(20, width/3-4)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		resultCard("Total Cost", cost.FormatCurrency(b.TotalCost), "#5B8DEF", cardWidth),
		resultCard("Total Hours", cost.FormatHours(b.TotalHours), "#4CAF50", cardWidth),
		resultCard("Productivity Impact", cost.FormatCurrency(b.LostProductivity), "#FF6B6B", cardWidth),
	)
	callout := calloutStyle.Width(max(20, width-4)).Render(fmt.Sprintf(
		"%s hours equals approximately %.0f full-time employees for an entire year.",
		cost.FormatHours(b.TotalHours), b.FTEEquivalent()))
	return lipgloss.JoinVertical(lipgloss.Left, sectionStyle.Render("Results"), cards, "", callout)
}

func resultCard(title, value, color string, width int) string {
	accent := lipgloss.Color(color)
	head := lipgloss.NewStyle().Bold(true).Render(title)
	body := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(value)
	foot := hintStyle.Render("Estimated value")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, head, body, foot))
}

// formatValue prints a parameter the way a user would type it.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
