// Package main implements a CLI tool to calculate the real-world cost of performance reviews.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codeGROOVE-dev/reviewcost/internal/tui"
	"github.com/codeGROOVE-dev/reviewcost/pkg/cost"
	"github.com/codeGROOVE-dev/reviewcost/pkg/scenario"
)

// report is one estimate in JSON output.
//
//nolint:govet // fieldalignment: API struct field order optimized for readability
type report struct {
	Name          string         `json:"name,omitempty"`
	Inputs        cost.Inputs    `json:"inputs"`
	Result        cost.Result    `json:"result"`
	Breakdown     cost.Breakdown `json:"breakdown"`
	FTEEquivalent float64        `json:"fte_equivalent"`
}

func newReport(name string, in cost.Inputs) report {
	b := cost.Detail(in)
	return report{
		Name:          name,
		Inputs:        in,
		Result:        b.Result(),
		Breakdown:     b,
		FTEEquivalent: b.FTEEquivalent(),
	}
}

func main() {
	defaults := cost.DefaultInputs()

	// Define command-line flags. Values are read the same way the calculator
	// form reads them: non-numeric becomes 0 and negatives are clamped.
	employees := flag.String("employees", formatFlag(defaults.Employees), "Number of employees")
	managerSalary := flag.String("manager-salary", formatFlag(defaults.ManagerSalary), "Average manager annual salary")
	employeeSalary := flag.String("employee-salary", formatFlag(defaults.EmployeeSalary), "Average employee annual salary")
	managerHours := flag.String("manager-hours", formatFlag(defaults.ManagerHours), "Manager hours per employee reviewed")
	employeeHours := flag.String("employee-hours", formatFlag(defaults.EmployeeHours), "Employee hours for preparation and meeting")
	adminHours := flag.String("admin-hours", formatFlag(defaults.AdminHours), "Administrative hours (HR, systems, follow-up)")
	scenarioFile := flag.String("f", "", "YAML scenario file (overrides individual parameters)")
	format := flag.String("format", "human", "Output format: human or json")
	interactive := flag.Bool("interactive", false, "Open the interactive calculator")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Calculate the organizational cost of an annual performance review process.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --employees 250 --manager-salary 150000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f reviews.yaml --format json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --interactive\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := validateFlags(*format, *scenarioFile, *interactive); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	in := cost.Inputs{
		Employees:      cost.ParseInput(*employees),
		ManagerSalary:  cost.ParseInput(*managerSalary),
		EmployeeSalary: cost.ParseInput(*employeeSalary),
		ManagerHours:   cost.ParseInput(*managerHours),
		EmployeeHours:  cost.ParseInput(*employeeHours),
		AdminHours:     cost.ParseInput(*adminHours),
	}

	if *interactive {
		final, err := runInteractive(in)
		if err != nil {
			log.Fatalf("Interactive calculator failed: %v", err)
		}
		in = final
	}

	var reports []report
	if *scenarioFile != "" {
		f, err := scenario.Load(*scenarioFile)
		if err != nil {
			log.Fatalf("Failed to load scenarios: %v", err)
		}
		for _, s := range f.Scenarios {
			reports = append(reports, newReport(s.Name, s.Inputs))
		}
	} else {
		reports = append(reports, newReport("", in))
	}

	// Output in requested format
	switch *format {
	case "human":
		for i, r := range reports {
			if i > 0 {
				fmt.Println()
			}
			printHumanReadable(os.Stdout, r)
		}
	case "json":
		var v any = reports
		if *scenarioFile == "" {
			v = reports[0]
		}
		if err := printJSON(os.Stdout, v); err != nil {
			log.Fatalf("Failed to encode JSON: %v", err)
		}
	}
}

// validateFlags rejects option combinations that cannot be honored.
//
//nolint:revive // flag-parameter: interactive mirrors the -interactive flag
func validateFlags(format, scenarioFile string, interactive bool) error {
	if format != "human" && format != "json" {
		return fmt.Errorf("unknown format: %s (must be human or json)", format)
	}
	if interactive && scenarioFile != "" {
		return errors.New("-interactive cannot be combined with -f: scenario values would replace the edited form")
	}
	return nil
}

// runInteractive opens the terminal calculator and returns the values on screen when it exits.
func runInteractive(in cost.Inputs) (cost.Inputs, error) {
	model, err := tea.NewProgram(tui.NewForm(in), tea.WithAltScreen()).Run()
	if err != nil {
		return in, fmt.Errorf("run form: %w", err)
	}
	form, ok := model.(*tui.Form)
	if !ok {
		return in, fmt.Errorf("unexpected model type %T", model)
	}
	return form.Inputs(), nil
}

func formatFlag(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printHumanReadable outputs an itemized bill in human-readable format.
func printHumanReadable(w io.Writer, r report) {
	b := r.Breakdown
	in := r.Inputs

	fmt.Fprintf(w, "PERFORMANCE REVIEW COST ANALYSIS\n")
	fmt.Fprintf(w, "================================\n\n")
	if r.Name != "" {
		fmt.Fprintf(w, "Scenario:      %s\n", r.Name)
	}
	fmt.Fprintf(w, "Employees:     %s (%s managers at 1 per %.0f)\n",
		cost.FormatHours(in.Employees), cost.FormatHours(b.Managers), cost.EmployeesPerManager)
	fmt.Fprintf(w, "Manager Rate:  $%.2f/hr (%s salary / %.0f hrs)\n",
		b.ManagerHourlyRate, cost.FormatCurrency(in.ManagerSalary), cost.HoursPerYear)
	fmt.Fprintf(w, "Employee Rate: $%.2f/hr (%s salary / %.0f hrs)\n\n",
		b.EmployeeHourlyRate, cost.FormatCurrency(in.EmployeeSalary), cost.HoursPerYear)

	fmt.Fprintf(w, "TIME COSTS\n")
	fmt.Fprintf(w, "  Manager Time                $%12.2f   (%.1f hrs per review, %.2f hrs)\n",
		b.ManagerTimeCost, in.ManagerHours, b.ManagerHours)
	fmt.Fprintf(w, "  Employee Time               $%12.2f   (%.1f hrs per review, %.2f hrs)\n",
		b.EmployeeTimeCost, in.EmployeeHours, b.EmployeeHours)
	fmt.Fprintf(w, "  Administrative Time         $%12.2f   (%.1f hrs per review, %.2f hrs)\n",
		b.AdminTimeCost, in.AdminHours, b.AdminHours)
	fmt.Fprintf(w, "  ---\n")
	fmt.Fprintf(w, "  Time Subtotal               $%12.2f   (%.2f hrs total)\n\n",
		b.ManagerTimeCost+b.EmployeeTimeCost+b.AdminTimeCost, b.TotalHours)

	fmt.Fprintf(w, "PRODUCTIVITY IMPACT\n")
	fmt.Fprintf(w, "  Lost Productivity           $%12.2f   (%.0f%% dip for %.0f weeks of $%.2f/week)\n\n",
		b.LostProductivity, cost.ProductivityDip*100, cost.DipWeeks, b.WeeklyProductivity)

	fmt.Fprintf(w, "================================\n")
	fmt.Fprintf(w, "TOTAL COST                    %s\n", cost.FormatCurrency(b.TotalCost))
	fmt.Fprintf(w, "TOTAL HOURS                   %s\n", cost.FormatHours(b.TotalHours))
	fmt.Fprintf(w, "PRODUCTIVITY IMPACT           %s\n", cost.FormatCurrency(b.LostProductivity))
	fmt.Fprintf(w, "================================\n")
	fmt.Fprintf(w, "%s hours equals approximately %.0f full-time employees for an entire year.\n",
		cost.FormatHours(b.TotalHours), r.FTEEquivalent)
}

// printJSON outputs the cost breakdown in JSON format.
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
