package sizing

import (
	"sort"

	"github.com/printloom/dtfbase/model"
)

// selectProfile implements spec §4.1's profile-selection rule: normalize
// the SKU, scan profiles by descending normalized prefix length, pick the
// first whose prefix leads the SKU; fall back to the tenant's default
// profile; fail with NO_PROFILE if neither exists.
func selectProfile(sku string, profiles []model.SizingProfile) (model.SizingProfile, bool) {
	normSKU := model.NormalizeSKU(sku)

	candidates := make([]model.SizingProfile, len(profiles))
	copy(candidates, profiles)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(model.NormalizeSKU(candidates[i].SKUPrefix)) > len(model.NormalizeSKU(candidates[j].SKUPrefix))
	})

	for _, p := range candidates {
		prefix := model.NormalizeSKU(p.SKUPrefix)
		if prefix == "" {
			continue
		}
		if len(normSKU) >= len(prefix) && normSKU[:len(prefix)] == prefix {
			return p, true
		}
	}

	for _, p := range profiles {
		if p.IsDefault {
			return p, true
		}
	}

	return model.SizingProfile{}, false
}
