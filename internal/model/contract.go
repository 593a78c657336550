package model

import "time"

type Contract struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ReferenceNumber string `gorm:"size:100;uniqueIndex;not null" json:"referenceNumber"`
	Institution     string `gorm:"size:200;not null" json:"institution"`
	ClientID        uint   `gorm:"not null" json:"clientId"`
	AdministratorID uint   `gorm:"not null" json:"administratorId"`
	ContractDate    Date   `gorm:"not null" json:"contractDate"`
	ValidityDate    Date   `gorm:"not null" json:"validityDate"`
	TerminationDate *Date  `json:"terminationDate"`

	Client           Person            `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client"`
	Administrator    Person            `gorm:"foreignKey:AdministratorID" json:"administrator"`
	ContractAdvisors []ContractAdvisor `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsActive reports whether the contract is running at the given time:
// no termination date recorded and a validity date still in the future.
func (c *Contract) IsActive(at time.Time) bool {
	return c.TerminationDate == nil && c.ValidityDate.After(at)
}

// Advisors flattens the join rows into the co-advisor persons.
func (c *Contract) Advisors() []Person {
	advisors := make([]Person, 0, len(c.ContractAdvisors))
	for _, ca := range c.ContractAdvisors {
		advisors = append(advisors, ca.Advisor)
	}
	return advisors
}

// ContractAdvisor links a contract to one of its co-advisors.
// Membership is the only attribute; rows are replaced as a unit whenever
// the contract's advisor set changes.
type ContractAdvisor struct {
	ContractID uint `gorm:"primaryKey" json:"contractId"`
	AdvisorID  uint `gorm:"primaryKey" json:"advisorId"`

	Contract Contract `gorm:"foreignKey:ContractID" json:"-"`
	Advisor  Person   `gorm:"foreignKey:AdvisorID" json:"-"`
}
