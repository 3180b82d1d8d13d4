package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// NextBoxNumber derives the next sequential box identifier for a store
// from the existing set of box numbers across all stores.
//
// The store code is the first whitespace-delimited token of the store
// name. Existing box numbers carrying that prefix are split on "-";
// entries with exactly 3 segments contribute their parsed numeric tail
// (malformed tails count as 0). The result is <CODE>-BOX-<max+1>
// zero-padded to 3 digits. Past 999 the padding is cosmetic only; the
// sequence keeps incrementing.
//
// Two allocations racing before either is persisted can compute the
// same number. The deployment model is a single active writer per
// store, so this is an accepted limitation rather than an invariant.
func NextBoxNumber(storeName string, existing []string) string {
	code := storeCode(storeName)
	if code == "" {
		return ""
	}

	max := 0
	for _, box := range existing {
		if !strings.HasPrefix(box, code) {
			continue
		}
		parts := strings.Split(box, "-")
		if len(parts) != 3 {
			continue
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			n = 0
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s-BOX-%03d", code, max+1)
}

func storeCode(storeName string) string {
	fields := strings.Fields(storeName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
