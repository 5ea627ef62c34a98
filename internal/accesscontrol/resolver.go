package accesscontrol

// HasPermission reports whether the role's fixed permission table contains
// the exact (module, action) pair. Unknown roles, modules or actions yield
// false; the resolver never errors.
func HasPermission(role Role, module, action string) bool {
	for _, perm := range rolePermissions[role] {
		if perm.Module == module && perm.Action == action {
			return true
		}
	}
	return false
}

// CanAccessModule reports whether the module is visible to the role at all,
// independent of fine-grained action permissions.
func CanAccessModule(role Role, module string) bool {
	for _, visible := range moduleVisibility[role] {
		if visible == module {
			return true
		}
	}
	return false
}

// PermissionsFor returns a copy of the role's permission set.
func PermissionsFor(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// ModulesFor returns a copy of the modules visible to the role.
func ModulesFor(role Role) []string {
	modules := moduleVisibility[role]
	out := make([]string, len(modules))
	copy(out, modules)
	return out
}

// Gate authorizes a guarded action. When requiredRoles is supplied the role
// must be a member; when requiredPermissions is supplied at least one pair
// must be granted. Both conditions must hold when both are supplied. An
// empty gate passes.
func Gate(role Role, requiredRoles []Role, requiredPermissions []Permission) bool {
	if len(requiredRoles) > 0 {
		member := false
		for _, required := range requiredRoles {
			if role == required {
				member = true
				break
			}
		}
		if !member {
			return false
		}
	}

	if len(requiredPermissions) > 0 {
		granted := false
		for _, perm := range requiredPermissions {
			if HasPermission(role, perm.Module, perm.Action) {
				granted = true
				break
			}
		}
		if !granted {
			return false
		}
	}

	return true
}
