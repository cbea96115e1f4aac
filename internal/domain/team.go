package domain

import "fmt"

// Role is a sales team role.
type Role string

const (
	RoleCloser  Role = "closer"
	RoleSetter  Role = "setter"
	RoleManager Role = "manager"
	RoleBench   Role = "bench"
)

// Roles lists every role in reporting order.
var Roles = []Role{RoleCloser, RoleSetter, RoleManager, RoleBench}

// String returns the string representation of Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCloser, RoleSetter, RoleManager, RoleBench:
		return true
	}
	return false
}

// RoleCompensation is the annual pay plan of one role.
type RoleCompensation struct {
	Base          float64 `json:"base"`           // annual
	Variable      float64 `json:"variable"`       // annual target
	CommissionPct float64 `json:"commission_pct"` // 0-100
}

// OTE is on-target earnings: base plus variable at full attainment.
func (c RoleCompensation) OTE() float64 {
	return c.Base + c.Variable
}

// Validate checks amounts are non-negative and the commission percentage in range.
func (c RoleCompensation) Validate() error {
	if err := checkNonNegative("base", c.Base); err != nil {
		return err
	}
	if err := checkNonNegative("variable", c.Variable); err != nil {
		return err
	}
	return checkPct("commission_pct", c.CommissionPct)
}

// TeamStructure holds headcount and compensation per role.
type TeamStructure struct {
	Closers  int `json:"closers"`
	Setters  int `json:"setters"`
	Managers int `json:"managers"`
	Bench    int `json:"bench"`

	CloserComp  RoleCompensation `json:"closer_comp"`
	SetterComp  RoleCompensation `json:"setter_comp"`
	ManagerComp RoleCompensation `json:"manager_comp"`
	BenchComp   RoleCompensation `json:"bench_comp"`
}

// Headcount returns the number of people in role.
func (t TeamStructure) Headcount(role Role) int {
	switch role {
	case RoleCloser:
		return t.Closers
	case RoleSetter:
		return t.Setters
	case RoleManager:
		return t.Managers
	case RoleBench:
		return t.Bench
	}
	return 0
}

// Compensation returns the pay plan of role.
func (t TeamStructure) Compensation(role Role) RoleCompensation {
	switch role {
	case RoleCloser:
		return t.CloserComp
	case RoleSetter:
		return t.SetterComp
	case RoleManager:
		return t.ManagerComp
	case RoleBench:
		return t.BenchComp
	}
	return RoleCompensation{}
}

// TotalBase is the headcount-weighted sum of annual base salaries.
func (t TeamStructure) TotalBase() float64 {
	total := 0.0
	for _, r := range Roles {
		total += float64(t.Headcount(r)) * t.Compensation(r).Base
	}
	return total
}

// TotalCount is the number of people across all roles.
func (t TeamStructure) TotalCount() int {
	n := 0
	for _, r := range Roles {
		n += t.Headcount(r)
	}
	return n
}

// Validate rejects negative headcounts and invalid compensation plans.
// A zero headcount for a single role is allowed; an empty team is not.
func (t TeamStructure) Validate() error {
	for _, r := range Roles {
		if t.Headcount(r) < 0 {
			return fmt.Errorf("%w: %s headcount %d", ErrNegativeAmount, r, t.Headcount(r))
		}
		if err := t.Compensation(r).Validate(); err != nil {
			return fmt.Errorf("%s compensation: %w", r, err)
		}
	}
	if t.TotalCount() == 0 {
		return fmt.Errorf("%w: team headcount", ErrNonPositive)
	}
	return nil
}
