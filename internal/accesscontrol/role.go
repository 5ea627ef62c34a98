package accesscontrol

// Role is a fixed identity tag. Every user holds exactly one role at a
// time; the role alone determines permissions and module visibility.
type Role string

const (
	RoleIntern            Role = "intern"
	RoleEmployee          Role = "employee"
	RoleSeniorEmployee    Role = "senior_employee"
	RoleTeamLead          Role = "team_lead"
	RoleDepartmentManager Role = "department_manager"
	RoleHRManager         Role = "hr_manager"
	RoleIT                Role = "it"
	RoleAdmin             Role = "admin"
	RoleSuperAdmin        Role = "super_admin"
)

// AllRoles lists every recognized role, lowest authority first.
var AllRoles = []Role{
	RoleIntern,
	RoleEmployee,
	RoleSeniorEmployee,
	RoleTeamLead,
	RoleDepartmentManager,
	RoleHRManager,
	RoleIT,
	RoleAdmin,
	RoleSuperAdmin,
}

// Tier buckets roles by how much of the request catalog they may see.
type Tier int

const (
	// TierEmployee sees only their own submissions.
	TierEmployee Tier = iota
	// TierManager additionally sees requests assigned to them.
	TierManager
	// TierStaff sees everything.
	TierStaff
)

var roleTiers = map[Role]Tier{
	RoleIntern:            TierEmployee,
	RoleEmployee:          TierEmployee,
	RoleSeniorEmployee:    TierEmployee,
	RoleTeamLead:          TierManager,
	RoleDepartmentManager: TierManager,
	RoleIT:                TierManager,
	RoleHRManager:         TierStaff,
	RoleAdmin:             TierStaff,
	RoleSuperAdmin:        TierStaff,
}

// TierOf returns the visibility tier for a role. Unknown roles get the
// most restrictive tier.
func TierOf(role Role) Tier {
	if tier, ok := roleTiers[role]; ok {
		return tier
	}
	return TierEmployee
}

func (r Role) IsManagerTier() bool {
	return TierOf(r) >= TierManager
}

func (r Role) IsStaffTier() bool {
	return TierOf(r) == TierStaff
}

func (r Role) IsValid() bool {
	_, ok := roleTiers[r]
	return ok
}
