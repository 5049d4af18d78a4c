package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kioskmart/models"
)

func uintPtr(v uint) *uint { return &v }

func linkedAdmin(role string, brandIDs ...uint) *models.Admin {
	admin := &models.Admin{ID: 1, Role: role}
	for _, id := range brandIDs {
		admin.Brands = append(admin.Brands, models.AdminBrand{BrandID: id})
	}
	return admin
}

func TestScopeBrandIDs(t *testing.T) {
	assert.Nil(t, ScopeBrandIDs(linkedAdmin(models.RoleSuperAdmin)))
	assert.Nil(t, ScopeBrandIDs(linkedAdmin(models.RoleSuperAdmin, 1, 2)))

	// zero links means unrestricted, deliberately, so a misconfigured
	// account is not locked out
	assert.Nil(t, ScopeBrandIDs(linkedAdmin(models.RoleBrandAdmin)))

	assert.Equal(t, []uint{3, 5}, ScopeBrandIDs(linkedAdmin(models.RoleBrandAdmin, 3, 5)))
}

func TestCanAccessBrand(t *testing.T) {
	super := linkedAdmin(models.RoleSuperAdmin)
	assert.True(t, CanAccessBrand(super, uintPtr(9)))
	assert.True(t, CanAccessBrand(super, nil))

	unassigned := linkedAdmin(models.RoleBrandAdmin)
	assert.True(t, CanAccessBrand(unassigned, uintPtr(9)))
	assert.True(t, CanAccessBrand(unassigned, nil))

	scoped := linkedAdmin(models.RoleBrandAdmin, 1, 2)
	assert.True(t, CanAccessBrand(scoped, uintPtr(1)))
	assert.True(t, CanAccessBrand(scoped, uintPtr(2)))
	assert.False(t, CanAccessBrand(scoped, uintPtr(3)))
	assert.False(t, CanAccessBrand(scoped, nil))
}
