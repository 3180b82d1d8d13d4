package inventory

import "testing"

func TestDepartmentForSKU(t *testing.T) {
	cases := []struct {
		sku  string
		want string
	}{
		{"101001", "T-Shirts"},
		{"102003", "Jeans"},
		{"201002", "Footwear"},
		{"301001", "Bags"},
		{"302002", "Headwear"},
		{"999999", "Other"},
		{"10", "Other"},
		{"", "Other"},
	}

	for _, tc := range cases {
		if got := DepartmentForSKU(tc.sku); got != tc.want {
			t.Fatalf("DepartmentForSKU(%q) = %q, want %q", tc.sku, got, tc.want)
		}
	}
}
