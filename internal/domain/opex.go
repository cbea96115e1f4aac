package domain

// OperatingCosts are fixed monthly operating expenses outside marketing and payroll.
type OperatingCosts struct {
	OfficeRent    float64 `json:"office_rent"`
	SoftwareCosts float64 `json:"software_costs"`
	OtherOpex     float64 `json:"other_opex"`
}

// Total is the sum of all operating cost lines.
func (o OperatingCosts) Total() float64 {
	return o.OfficeRent + o.SoftwareCosts + o.OtherOpex
}

// Validate rejects negative cost lines.
func (o OperatingCosts) Validate() error {
	if err := checkNonNegative("office_rent", o.OfficeRent); err != nil {
		return err
	}
	if err := checkNonNegative("software_costs", o.SoftwareCosts); err != nil {
		return err
	}
	return checkNonNegative("other_opex", o.OtherOpex)
}
