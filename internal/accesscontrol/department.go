package accesscontrol

// Department is an enumerated org unit used for request routing and for
// scoping which records a manager may see.
type Department string

const (
	DepartmentEngineering Department = "engineering"
	DepartmentHR          Department = "hr"
	DepartmentMarketing   Department = "marketing"
	DepartmentSales       Department = "sales"
	DepartmentFinance     Department = "finance"
	DepartmentOperations  Department = "operations"
	DepartmentIT          Department = "it"
	DepartmentAdmin       Department = "admin"
	DepartmentLegal       Department = "legal"
)

var AllDepartments = []Department{
	DepartmentEngineering,
	DepartmentHR,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentFinance,
	DepartmentOperations,
	DepartmentIT,
	DepartmentAdmin,
	DepartmentLegal,
}

func (d Department) IsValid() bool {
	for _, known := range AllDepartments {
		if d == known {
			return true
		}
	}
	return false
}
