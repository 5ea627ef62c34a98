package accesscontrol_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	ac "github.com/peoplepulse/peoplepulse/internal/accesscontrol"
)

var _ = Describe("Resolver", func() {
	Describe("HasPermission", func() {
		It("is deterministic for repeated calls with identical inputs", func() {
			for i := 0; i < 3; i++ {
				Expect(ac.HasPermission(ac.RoleEmployee, ac.ModuleRequests, ac.ActionCreate)).To(BeTrue())
				Expect(ac.HasPermission(ac.RoleEmployee, ac.ModuleRequests, ac.ActionApprove)).To(BeFalse())
			}
		})

		It("requires an exact match on both module and action", func() {
			Expect(ac.HasPermission(ac.RoleEmployee, ac.ModuleTasks, ac.ActionCreate)).To(BeTrue())
			Expect(ac.HasPermission(ac.RoleEmployee, ac.ModuleTasks, "*")).To(BeFalse())
			Expect(ac.HasPermission(ac.RoleEmployee, "*", ac.ActionCreate)).To(BeFalse())
		})

		It("returns false for unknown roles, modules and actions", func() {
			Expect(ac.HasPermission(ac.Role("contractor"), ac.ModuleTasks, ac.ActionView)).To(BeFalse())
			Expect(ac.HasPermission(ac.RoleAdmin, "payroll2", ac.ActionView)).To(BeFalse())
			Expect(ac.HasPermission(ac.RoleAdmin, ac.ModuleTasks, "transmogrify")).To(BeFalse())
		})

		It("layers permission sets so higher tiers keep lower-tier grants", func() {
			for _, role := range []ac.Role{ac.RoleTeamLead, ac.RoleHRManager, ac.RoleSuperAdmin} {
				Expect(ac.HasPermission(role, ac.ModuleRequests, ac.ActionCreate)).To(BeTrue())
				Expect(ac.HasPermission(role, ac.ModuleRequests, ac.ActionApprove)).To(BeTrue())
			}
			Expect(ac.HasPermission(ac.RoleHRManager, ac.ModuleSystem, ac.ActionEdit)).To(BeFalse())
			Expect(ac.HasPermission(ac.RoleAdmin, ac.ModuleSystem, ac.ActionEdit)).To(BeTrue())
		})
	})

	Describe("CanAccessModule", func() {
		It("grants visibility without implying every action inside the module", func() {
			Expect(ac.CanAccessModule(ac.RoleEmployee, ac.ModulePolicies)).To(BeTrue())
			Expect(ac.HasPermission(ac.RoleEmployee, ac.ModulePolicies, ac.ActionCreate)).To(BeFalse())
		})

		It("hides analytics and system from employee-tier roles", func() {
			Expect(ac.CanAccessModule(ac.RoleEmployee, ac.ModuleAnalytics)).To(BeFalse())
			Expect(ac.CanAccessModule(ac.RoleEmployee, ac.ModuleSystem)).To(BeFalse())
			Expect(ac.CanAccessModule(ac.RoleDepartmentManager, ac.ModuleAnalytics)).To(BeTrue())
			Expect(ac.CanAccessModule(ac.RoleDepartmentManager, ac.ModuleSystem)).To(BeFalse())
			Expect(ac.CanAccessModule(ac.RoleSuperAdmin, ac.ModuleSystem)).To(BeTrue())
		})

		It("returns false for unknown roles", func() {
			Expect(ac.CanAccessModule(ac.Role("contractor"), ac.ModuleDashboard)).To(BeFalse())
		})
	})

	Describe("Gate", func() {
		It("passes an empty gate", func() {
			Expect(ac.Gate(ac.RoleIntern, nil, nil)).To(BeTrue())
		})

		It("checks role membership alone when only roles are supplied", func() {
			gate := []ac.Role{ac.RoleAdmin, ac.RoleSuperAdmin}
			Expect(ac.Gate(ac.RoleAdmin, gate, nil)).To(BeTrue())
			Expect(ac.Gate(ac.RoleHRManager, gate, nil)).To(BeFalse())
		})

		It("checks any-of permissions alone when only permissions are supplied", func() {
			perms := []ac.Permission{
				ac.Perm(ac.ModuleRequests, ac.ActionApprove),
				ac.Perm(ac.ModuleRequests, ac.ActionReject),
			}
			Expect(ac.Gate(ac.RoleTeamLead, nil, perms)).To(BeTrue())
			Expect(ac.Gate(ac.RoleEmployee, nil, perms)).To(BeFalse())
		})

		It("requires both role membership and a permission when both are supplied", func() {
			roles := []ac.Role{ac.RoleAdmin}
			perms := []ac.Permission{ac.Perm(ac.ModuleSystem, ac.ActionEdit)}

			// hr_manager lacks both the role and the permission
			Expect(ac.Gate(ac.RoleHRManager, roles, perms)).To(BeFalse())
			// admin satisfies both
			Expect(ac.Gate(ac.RoleAdmin, roles, perms)).To(BeTrue())
			// super_admin holds the permission but is not in the role set
			Expect(ac.Gate(ac.RoleSuperAdmin, roles, perms)).To(BeFalse())
		})
	})

	Describe("Visibility tiers", func() {
		It("buckets roles into employee, manager and staff tiers", func() {
			Expect(ac.TierOf(ac.RoleIntern)).To(Equal(ac.TierEmployee))
			Expect(ac.TierOf(ac.RoleSeniorEmployee)).To(Equal(ac.TierEmployee))
			Expect(ac.TierOf(ac.RoleTeamLead)).To(Equal(ac.TierManager))
			Expect(ac.TierOf(ac.RoleIT)).To(Equal(ac.TierManager))
			Expect(ac.TierOf(ac.RoleHRManager)).To(Equal(ac.TierStaff))
			Expect(ac.TierOf(ac.RoleSuperAdmin)).To(Equal(ac.TierStaff))
		})

		It("treats unknown roles as the most restrictive tier", func() {
			Expect(ac.TierOf(ac.Role("contractor"))).To(Equal(ac.TierEmployee))
		})
	})
})
