package accesscontrol

// Module names the feature areas gated on the dashboard.
const (
	ModuleDashboard     = "dashboard"
	ModuleEmployees     = "employees"
	ModuleRequests      = "requests"
	ModuleTasks         = "tasks"
	ModulePolicies      = "policies"
	ModulePayslips      = "payslips"
	ModuleAnnouncements = "announcements"
	ModuleAnalytics     = "analytics"
	ModuleTimeTracking  = "timetracking"
	ModuleSystem        = "system"
)

// Actions a permission may grant on a module.
const (
	ActionView     = "view"
	ActionCreate   = "create"
	ActionEdit     = "edit"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionEscalate = "escalate"
	ActionComment  = "comment"
)

// Permission is a (module, action) pair. Checks are exact matches on both
// fields; there is no wildcard form.
type Permission struct {
	Module string `json:"module"`
	Action string `json:"action"`
}

func Perm(module, action string) Permission {
	return Permission{Module: module, Action: action}
}

func clonePerms(base []Permission, extra ...Permission) []Permission {
	out := make([]Permission, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}

// Permission sets are layered: each tier extends the one below it. The
// tables are the single source of truth; nothing is computed per user.
var basePermissions = []Permission{
	Perm(ModuleDashboard, ActionView),
	Perm(ModuleEmployees, ActionView),
	Perm(ModuleRequests, ActionView),
	Perm(ModuleRequests, ActionCreate),
	Perm(ModuleRequests, ActionComment),
	Perm(ModuleTasks, ActionView),
	Perm(ModuleTasks, ActionCreate),
	Perm(ModuleTasks, ActionEdit),
	Perm(ModulePolicies, ActionView),
	Perm(ModulePayslips, ActionView),
	Perm(ModuleAnnouncements, ActionView),
	Perm(ModuleTimeTracking, ActionView),
	Perm(ModuleTimeTracking, ActionCreate),
}

var managerPermissions = clonePerms(basePermissions,
	Perm(ModuleRequests, ActionApprove),
	Perm(ModuleRequests, ActionReject),
	Perm(ModuleRequests, ActionEscalate),
	Perm(ModuleTasks, ActionDelete),
	Perm(ModuleAnalytics, ActionView),
)

var hrPermissions = clonePerms(managerPermissions,
	Perm(ModuleEmployees, ActionCreate),
	Perm(ModuleEmployees, ActionEdit),
	Perm(ModuleEmployees, ActionDelete),
	Perm(ModulePolicies, ActionCreate),
	Perm(ModulePolicies, ActionEdit),
	Perm(ModuleAnnouncements, ActionCreate),
	Perm(ModuleAnnouncements, ActionEdit),
	Perm(ModulePayslips, ActionCreate),
)

var adminPermissions = clonePerms(hrPermissions,
	Perm(ModulePolicies, ActionDelete),
	Perm(ModuleAnnouncements, ActionDelete),
	Perm(ModuleTimeTracking, ActionEdit),
	Perm(ModuleSystem, ActionView),
	Perm(ModuleSystem, ActionEdit),
)

var rolePermissions = map[Role][]Permission{
	RoleIntern:            basePermissions,
	RoleEmployee:          basePermissions,
	RoleSeniorEmployee:    basePermissions,
	RoleTeamLead:          managerPermissions,
	RoleDepartmentManager: managerPermissions,
	RoleIT:                managerPermissions,
	RoleHRManager:         hrPermissions,
	RoleAdmin:             adminPermissions,
	RoleSuperAdmin:        adminPermissions,
}

// moduleVisibility is deliberately separate from rolePermissions: a role
// may see a module (a dashboard tile, a route) while holding only a subset
// of actions inside it.
var baseModules = []string{
	ModuleDashboard,
	ModuleEmployees,
	ModuleRequests,
	ModuleTasks,
	ModulePolicies,
	ModulePayslips,
	ModuleAnnouncements,
	ModuleTimeTracking,
}

var moduleVisibility = map[Role][]string{
	RoleIntern:            baseModules,
	RoleEmployee:          baseModules,
	RoleSeniorEmployee:    baseModules,
	RoleTeamLead:          append(append([]string{}, baseModules...), ModuleAnalytics),
	RoleDepartmentManager: append(append([]string{}, baseModules...), ModuleAnalytics),
	RoleIT:                append(append([]string{}, baseModules...), ModuleAnalytics),
	RoleHRManager:         append(append([]string{}, baseModules...), ModuleAnalytics),
	RoleAdmin:             append(append([]string{}, baseModules...), ModuleAnalytics, ModuleSystem),
	RoleSuperAdmin:        append(append([]string{}, baseModules...), ModuleAnalytics, ModuleSystem),
}
