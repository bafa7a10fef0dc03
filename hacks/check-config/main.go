// Package main prints the default review cost inputs and the figures they produce.
package main

import (
	"fmt"

	"github.com/codeGROOVE-dev/reviewcost/pkg/cost"
)

func main() {
	in := cost.DefaultInputs()
	fmt.Printf("Employees: %v\n", in.Employees)
	fmt.Printf("ManagerSalary: %v\n", in.ManagerSalary)
	fmt.Printf("EmployeeSalary: %v\n", in.EmployeeSalary)
	fmt.Printf("ManagerHours: %v\n", in.ManagerHours)
	fmt.Printf("EmployeeHours: %v\n", in.EmployeeHours)
	fmt.Printf("AdminHours: %v\n", in.AdminHours)

	b := cost.Detail(in)
	fmt.Printf("Managers: %v (factor %v)\n", b.Managers, b.ManagerFactor)
	fmt.Printf("TotalCost: %s\n", cost.FormatCurrency(b.TotalCost))
	fmt.Printf("TotalHours: %s\n", cost.FormatHours(b.TotalHours))
	fmt.Printf("ProductivityImpact: %s\n", cost.FormatCurrency(b.LostProductivity))
	fmt.Printf("FTEEquivalent: %v\n", b.FTEEquivalent())
}
