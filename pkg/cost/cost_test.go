package cost

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDefaultInputs(t *testing.T) {
	in := DefaultInputs()

	if in.Employees != 100 {
		t.Errorf("Expected 100 employees, got %.0f", in.Employees)
	}

	if in.ManagerSalary != 120000 {
		t.Errorf("Expected manager salary $120,000, got $%.2f", in.ManagerSalary)
	}

	if in.EmployeeSalary != 80000 {
		t.Errorf("Expected employee salary $80,000, got $%.2f", in.EmployeeSalary)
	}

	if in.ManagerHours != 17 || in.EmployeeHours != 5 || in.AdminHours != 2 {
		t.Errorf("Expected 17/5/2 hours, got %.0f/%.0f/%.0f", in.ManagerHours, in.EmployeeHours, in.AdminHours)
	}
}

func TestDetailDefaults(t *testing.T) {
	b := Detail(DefaultInputs())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"manager hourly rate", b.ManagerHourlyRate, 57.6923},
		{"employee hourly rate", b.EmployeeHourlyRate, 38.4615},
		{"managers", b.Managers, 10},
		{"manager factor", b.ManagerFactor, 10},
		{"manager time cost", b.ManagerTimeCost, 98076.92},
		{"employee time cost", b.EmployeeTimeCost, 19230.77},
		{"admin time cost", b.AdminTimeCost, 7692.31},
		{"weekly productivity", b.WeeklyProductivity, 153846.15},
		{"lost productivity", b.LostProductivity, 15384.62},
		{"total cost", b.TotalCost, 140384.62},
		{"manager hours", b.ManagerHours, 1700},
		{"employee hours", b.EmployeeHours, 500},
		{"admin hours", b.AdminHours, 200},
		{"total hours", b.TotalHours, 2400},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.01 {
			t.Errorf("%s = %.4f, want %.4f", c.name, c.got, c.want)
		}
	}
}

func TestEstimateDefaults(t *testing.T) {
	r := Estimate(DefaultInputs())

	if math.Abs(r.TotalCost-140384.62) > 0.01 {
		t.Errorf("Expected total cost $140,384.62, got $%.2f", r.TotalCost)
	}

	if r.TotalHours != 2400 {
		t.Errorf("Expected 2400 total hours, got %.2f", r.TotalHours)
	}

	if math.Abs(r.ProductivityImpact-15384.62) > 0.01 {
		t.Errorf("Expected productivity impact $15,384.62, got $%.2f", r.ProductivityImpact)
	}
}

func TestEstimateMatchesFormula(t *testing.T) {
	in := Inputs{
		Employees:      37,
		ManagerSalary:  133000,
		EmployeeSalary: 71500,
		ManagerHours:   12.5,
		EmployeeHours:  4,
		AdminHours:     1.5,
	}

	// Same operation order as the published calculator.
	managerRate := in.ManagerSalary / 2080
	employeeRate := in.EmployeeSalary / 2080
	managers := math.Ceil(in.Employees / 10)
	managerCost := managers * in.ManagerHours * managerRate * (in.Employees / 10)
	employeeCost := in.Employees * in.EmployeeHours * employeeRate
	adminCost := in.Employees * in.AdminHours * employeeRate
	lost := in.Employees * in.EmployeeSalary / 52 * 0.05 * 2
	wantCost := managerCost + employeeCost + adminCost + lost
	wantHours := managers*in.ManagerHours*(in.Employees/10) + in.Employees*in.EmployeeHours + in.Employees*in.AdminHours

	r := Estimate(in)
	if !closeTo(r.TotalCost, wantCost) {
		t.Errorf("TotalCost = %v, want %v", r.TotalCost, wantCost)
	}
	if !closeTo(r.TotalHours, wantHours) {
		t.Errorf("TotalHours = %v, want %v", r.TotalHours, wantHours)
	}
	if !closeTo(r.ProductivityImpact, lost) {
		t.Errorf("ProductivityImpact = %v, want %v", r.ProductivityImpact, lost)
	}
}

func TestEstimateManagerRounding(t *testing.T) {
	tests := []struct {
		employees    float64
		wantManagers float64
		wantFactor   float64
	}{
		{employees: 1, wantManagers: 1, wantFactor: 0.1},
		{employees: 10, wantManagers: 1, wantFactor: 1},
		{employees: 11, wantManagers: 2, wantFactor: 1.1},
		{employees: 15, wantManagers: 2, wantFactor: 1.5},
		{employees: 100, wantManagers: 10, wantFactor: 10},
		{employees: 101, wantManagers: 11, wantFactor: 10.1},
	}

	for _, tt := range tests {
		b := Detail(Inputs{Employees: tt.employees, ManagerHours: 1})
		if b.Managers != tt.wantManagers {
			t.Errorf("employees=%.0f: managers = %.0f, want %.0f", tt.employees, b.Managers, tt.wantManagers)
		}
		if math.Abs(b.ManagerFactor-tt.wantFactor) > 1e-9 {
			t.Errorf("employees=%.0f: factor = %.2f, want %.2f", tt.employees, b.ManagerFactor, tt.wantFactor)
		}
		if math.Abs(b.ManagerHours-tt.wantManagers*tt.wantFactor) > 1e-9 {
			t.Errorf("employees=%.0f: manager hours = %.2f, want %.2f",
				tt.employees, b.ManagerHours, tt.wantManagers*tt.wantFactor)
		}
	}
}

func TestEstimateZeroEmployees(t *testing.T) {
	in := DefaultInputs()
	in.Employees = 0

	r := Estimate(in)
	if r.TotalCost != 0 {
		t.Errorf("Expected zero cost with no employees, got $%.2f", r.TotalCost)
	}
	if r.TotalHours != 0 {
		t.Errorf("Expected zero hours with no employees, got %.2f", r.TotalHours)
	}
	if r.ProductivityImpact != 0 {
		t.Errorf("Expected zero productivity impact with no employees, got $%.2f", r.ProductivityImpact)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	in := Inputs{Employees: 73, ManagerSalary: 151234.56, EmployeeSalary: 65432.1, ManagerHours: 9.5, EmployeeHours: 3.25, AdminHours: 0.75}

	first := Estimate(in)
	for range 100 {
		if got := Estimate(in); got != first {
			t.Fatalf("Estimate not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestEstimateOrdering(t *testing.T) {
	samples := []Inputs{
		{},
		DefaultInputs(),
		{Employees: 1},
		{Employees: 3, EmployeeSalary: 1},
		{Employees: 999, ManagerSalary: 250000, EmployeeSalary: 10, ManagerHours: 40},
		{Employees: 0.5, ManagerSalary: 1, EmployeeSalary: 1, ManagerHours: 0.5, EmployeeHours: 0.5, AdminHours: 0.5},
		{Employees: 12000, ManagerSalary: 300000, EmployeeSalary: 200000, ManagerHours: 30, EmployeeHours: 10, AdminHours: 8},
	}

	for _, in := range samples {
		r := Estimate(in)
		if r.ProductivityImpact < 0 {
			t.Errorf("%+v: negative productivity impact %.2f", in, r.ProductivityImpact)
		}
		if r.TotalCost < r.ProductivityImpact {
			t.Errorf("%+v: total cost %.2f below productivity impact %.2f", in, r.TotalCost, r.ProductivityImpact)
		}
		if r.TotalHours < 0 {
			t.Errorf("%+v: negative total hours %.2f", in, r.TotalHours)
		}
	}
}

func TestEstimateHoursMonotonic(t *testing.T) {
	bumps := map[string]func(*Inputs){
		"manager hours":  func(in *Inputs) { in.ManagerHours++ },
		"employee hours": func(in *Inputs) { in.EmployeeHours++ },
		"admin hours":    func(in *Inputs) { in.AdminHours++ },
	}

	for name, bump := range bumps {
		t.Run(name, func(t *testing.T) {
			base := DefaultInputs()
			more := base
			bump(&more)

			before := Estimate(base)
			after := Estimate(more)

			if after.TotalHours <= before.TotalHours {
				t.Errorf("TotalHours did not increase: %.2f -> %.2f", before.TotalHours, after.TotalHours)
			}
			if after.TotalCost <= before.TotalCost {
				t.Errorf("TotalCost did not increase: %.2f -> %.2f", before.TotalCost, after.TotalCost)
			}
			if after.ProductivityImpact != before.ProductivityImpact {
				t.Errorf("ProductivityImpact changed: %.2f -> %.2f", before.ProductivityImpact, after.ProductivityImpact)
			}
		})
	}
}

func TestBreakdownTotals(t *testing.T) {
	b := Detail(Inputs{Employees: 42, ManagerSalary: 140000, EmployeeSalary: 90000, ManagerHours: 15, EmployeeHours: 6, AdminHours: 3})

	sumCost := b.ManagerTimeCost + b.EmployeeTimeCost + b.AdminTimeCost + b.LostProductivity
	if math.Abs(b.TotalCost-sumCost) > 1e-6 {
		t.Errorf("Total cost mismatch: %.2f != %.2f", b.TotalCost, sumCost)
	}

	sumHours := b.ManagerHours + b.EmployeeHours + b.AdminHours
	if math.Abs(b.TotalHours-sumHours) > 1e-6 {
		t.Errorf("Total hours mismatch: %.2f != %.2f", b.TotalHours, sumHours)
	}

	if r := b.Result(); r != Estimate(Inputs{Employees: 42, ManagerSalary: 140000, EmployeeSalary: 90000, ManagerHours: 15, EmployeeHours: 6, AdminHours: 3}) {
		t.Errorf("Breakdown.Result() = %+v disagrees with Estimate", r)
	}
}

func TestFTEEquivalent(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{hours: 0, want: 0},
		{hours: 1000, want: 0},
		{hours: 2400, want: 1},
		{hours: 3200, want: 2},
		{hours: 20800, want: 10},
	}

	for _, tt := range tests {
		b := Breakdown{TotalHours: tt.hours}
		if got := b.FTEEquivalent(); got != tt.want {
			t.Errorf("FTEEquivalent(%.0f hours) = %.0f, want %.0f", tt.hours, got, tt.want)
		}
	}
}

func TestResultJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Estimate(DefaultInputs()))
	if err != nil {
		t.Fatalf("Failed to marshal result: %v", err)
	}

	var fields map[string]float64
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}

	for _, key := range []string{"total_cost", "total_hours", "productivity_impact"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Result JSON missing %q: %s", key, data)
		}
	}
}

// closeTo allows for fused multiply-add on architectures that use it.
func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9*math.Max(1, math.Abs(want))
}
