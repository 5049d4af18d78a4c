package auth

import (
	"log/slog"

	"kioskmart/models"
)

// ScopeBrandIDs computes the brand filter for an acting admin. A nil result
// means unrestricted; it must never be confused with an empty slice, which
// would match nothing in a query.
//
// A brand_admin with zero brand links falls back to unrestricted so a
// misconfigured account is not silently locked out. The fallback is logged
// loudly because deny-until-assigned would be the safer default.
func ScopeBrandIDs(admin *models.Admin) []uint {
	if admin.IsSuper() {
		return nil
	}
	if len(admin.Brands) == 0 {
		slog.Warn("brand_admin has no brand assignments, granting access to all brands",
			"adminId", admin.ID, "email", admin.Email)
		return nil
	}
	ids := make([]uint, 0, len(admin.Brands))
	for _, link := range admin.Brands {
		ids = append(ids, link.BrandID)
	}
	return ids
}

// CanAccessBrand reports whether the admin may read or mutate a product in
// the given brand. brandID nil means the product has no brand; only an
// unrestricted admin may touch those, since a restricted admin's scope is a
// concrete brand set.
func CanAccessBrand(admin *models.Admin, brandID *uint) bool {
	allowed := ScopeBrandIDs(admin)
	if allowed == nil {
		return true
	}
	if brandID == nil {
		return false
	}
	for _, id := range allowed {
		if id == *brandID {
			return true
		}
	}
	return false
}
