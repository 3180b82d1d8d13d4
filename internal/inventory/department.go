package inventory

// departmentBySKUPrefix maps the leading 3 characters of a SKU to its
// department label.
var departmentBySKUPrefix = map[string]string{
	"101": "T-Shirts",
	"102": "Jeans",
	"201": "Footwear",
	"301": "Bags",
	"302": "Headwear",
}

// DepartmentOther is the label for SKUs with no known prefix.
const DepartmentOther = "Other"

// DepartmentForSKU derives the department from the first 3 characters
// of the SKU. Unknown or short codes map to "Other".
func DepartmentForSKU(sku string) string {
	if len(sku) < 3 {
		return DepartmentOther
	}
	if department, ok := departmentBySKUPrefix[sku[:3]]; ok {
		return department
	}
	return DepartmentOther
}
