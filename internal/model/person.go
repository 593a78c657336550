package model

// PersonRole governs which contract slots a person may fill.
type PersonRole string

const (
	PersonRoleClient  PersonRole = "client"
	PersonRoleAdvisor PersonRole = "advisor"
	PersonRoleBoth    PersonRole = "both"
)

func (r PersonRole) CanBeClient() bool {
	return r == PersonRoleClient || r == PersonRoleBoth
}

func (r PersonRole) CanBeAdvisor() bool {
	return r == PersonRoleAdvisor || r == PersonRoleBoth
}

// Person is the unified record for anyone who can appear on a contract,
// whether as the contracted client, the administrator, or a co-advisor.
type Person struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	FirstName        string     `gorm:"size:100;not null" json:"firstName"`
	LastName         string     `gorm:"size:100;not null" json:"lastName"`
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone            string     `gorm:"size:50" json:"phone"`
	PersonalIDNumber string     `gorm:"size:50" json:"personalIdNumber"`
	Age              int        `json:"age"`
	Role             PersonRole `gorm:"size:20;not null;default:client" json:"role"`

	ClientContracts        []Contract        `gorm:"foreignKey:ClientID" json:"-"`
	AdministratorContracts []Contract        `gorm:"foreignKey:AdministratorID" json:"-"`
	ContractAdvisors       []ContractAdvisor `gorm:"foreignKey:AdvisorID" json:"-"`
}
