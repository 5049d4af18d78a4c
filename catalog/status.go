// Package catalog holds the product approval rules, the shared listing
// query builder and the similar-products scorer.
package catalog

import (
	"kioskmart/apperr"
	"kioskmart/models"
)

// StatusOnCreate computes the status of a newly created product. An explicit
// status in the request always wins (validated against the enum). Otherwise
// super admins and pre-trusted brand admins get approved, everyone else
// starts pending.
func StatusOnCreate(admin *models.Admin, explicit string) (string, error) {
	if explicit != "" {
		if !models.ValidProductStatus(explicit) {
			return "", apperr.Validation("invalid product status %q", explicit)
		}
		return explicit, nil
	}
	if admin.IsSuper() || !admin.RequiresApproval {
		return models.ProductStatusApproved, nil
	}
	return models.ProductStatusPending, nil
}

// StatusOnUpdate computes the status after a content edit. Without an
// explicit status a super admin leaves it unchanged, while a brand admin's
// edit invalidates any prior approval and demotes the product to pending.
func StatusOnUpdate(admin *models.Admin, current, explicit string) (string, error) {
	if explicit != "" {
		if !models.ValidProductStatus(explicit) {
			return "", apperr.Validation("invalid product status %q", explicit)
		}
		return explicit, nil
	}
	if admin.IsSuper() {
		return current, nil
	}
	return models.ProductStatusPending, nil
}

// CanModerate reports whether the admin may use the dedicated approve and
// reject actions. Only super admins may, regardless of requiresApproval.
func CanModerate(admin *models.Admin) bool {
	return admin.IsSuper()
}
