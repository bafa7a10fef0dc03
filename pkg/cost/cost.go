// Package cost calculates the organizational cost of an annual performance review cycle.
// Costs are broken down into itemized components with the inputs that produced them.
package cost

import "math"

const (
	// HoursPerYear is the annual working-hour baseline (40 hours x 52 weeks).
	HoursPerYear = 2080.0

	// WeeksPerYear converts an annual salary into a weekly output value.
	WeeksPerYear = 52.0

	// EmployeesPerManager is the span of control: one manager per ten employees.
	EmployeesPerManager = 10.0

	// ProductivityDip is the output degradation while reviews are underway (5%).
	ProductivityDip = 0.05

	// DipWeeks is how long the degradation lasts.
	DipWeeks = 2.0
)

// Inputs holds the six organizational parameters of a review cycle.
// All fields are expected to be non-negative; see Clamp.
type Inputs struct {
	// Number of employees going through a review
	Employees float64 `json:"employees" yaml:"employees"`

	// Average manager annual salary (default: $120,000)
	ManagerSalary float64 `json:"manager_salary" yaml:"manager_salary"`

	// Average employee annual salary (default: $80,000)
	EmployeeSalary float64 `json:"employee_salary" yaml:"employee_salary"`

	// Manager hours per employee reviewed (industry average: 17)
	ManagerHours float64 `json:"manager_hours" yaml:"manager_hours"`

	// Employee hours for preparation and the meeting (industry average: 5)
	EmployeeHours float64 `json:"employee_hours" yaml:"employee_hours"`

	// Administrative hours for HR, systems and follow-up (industry average: 2)
	AdminHours float64 `json:"admin_hours" yaml:"admin_hours"`
}

// DefaultInputs returns industry-average parameters for a 100 person organization.
func DefaultInputs() Inputs {
	return Inputs{
		Employees:      100,
		ManagerSalary:  120000,
		EmployeeSalary: 80000,
		ManagerHours:   17,
		EmployeeHours:  5,
		AdminHours:     2,
	}
}

// Result is the headline outcome of an estimate.
type Result struct {
	TotalCost          float64 `json:"total_cost"`          // Currency units
	TotalHours         float64 `json:"total_hours"`         // Hours across managers, employees and admins
	ProductivityImpact float64 `json:"productivity_impact"` // Portion of TotalCost lost to reduced output
}

// Breakdown shows every intermediate value behind a Result.
type Breakdown struct {
	ManagerHourlyRate  float64 `json:"manager_hourly_rate"`
	EmployeeHourlyRate float64 `json:"employee_hourly_rate"`
	Managers           float64 `json:"managers"`       // ceil(employees / 10)
	ManagerFactor      float64 `json:"manager_factor"` // employees / 10, not rounded

	ManagerTimeCost  float64 `json:"manager_time_cost"`
	EmployeeTimeCost float64 `json:"employee_time_cost"`
	AdminTimeCost    float64 `json:"admin_time_cost"`

	ManagerHours  float64 `json:"manager_hours"`
	EmployeeHours float64 `json:"employee_hours"`
	AdminHours    float64 `json:"admin_hours"`

	WeeklyProductivity float64 `json:"weekly_productivity"`
	LostProductivity   float64 `json:"lost_productivity"`

	TotalCost  float64 `json:"total_cost"`
	TotalHours float64 `json:"total_hours"`
}

// Estimate computes the cost of a review cycle.
// It never fails; callers clamp inputs before calling.
func Estimate(in Inputs) Result {
	return Detail(in).Result()
}

// Detail computes the cost of a review cycle with an itemized breakdown.
func Detail(in Inputs) Breakdown {
	managerRate := in.ManagerSalary / HoursPerYear
	employeeRate := in.EmployeeSalary / HoursPerYear

	// A partial group of ten still needs a manager.
	managers := math.Ceil(in.Employees / EmployeesPerManager)

	// Manager terms scale by the continuous ratio as well as the rounded
	// manager count. Estimates published with earlier versions depend on it.
	factor := in.Employees / EmployeesPerManager

	managerCost := managers * in.ManagerHours * managerRate * factor
	employeeCost := in.Employees * in.EmployeeHours * employeeRate
	adminCost := in.Employees * in.AdminHours * employeeRate

	managerHours := managers * in.ManagerHours * factor
	employeeHours := in.Employees * in.EmployeeHours
	adminHours := in.Employees * in.AdminHours

	weekly := in.Employees * in.EmployeeSalary / WeeksPerYear
	lost := weekly * ProductivityDip * DipWeeks

	return Breakdown{
		ManagerHourlyRate:  managerRate,
		EmployeeHourlyRate: employeeRate,
		Managers:           managers,
		ManagerFactor:      factor,
		ManagerTimeCost:    managerCost,
		EmployeeTimeCost:   employeeCost,
		AdminTimeCost:      adminCost,
		ManagerHours:       managerHours,
		EmployeeHours:      employeeHours,
		AdminHours:         adminHours,
		WeeklyProductivity: weekly,
		LostProductivity:   lost,
		TotalCost:          managerCost + employeeCost + adminCost + lost,
		TotalHours:         managerHours + employeeHours + adminHours,
	}
}

// Result projects the headline figures out of a breakdown.
func (b Breakdown) Result() Result {
	return Result{
		TotalCost:          b.TotalCost,
		TotalHours:         b.TotalHours,
		ProductivityImpact: b.LostProductivity,
	}
}

// FTEEquivalent is the number of full-time employees whose entire working
// year equals the hours spent on reviews.
func (b Breakdown) FTEEquivalent() float64 {
	return math.Round(b.TotalHours / HoursPerYear)
}
