package settings

import (
	"context"

	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	settingService "amanah_backend/internals/features/settings/service"
)

// Defaults are the settings the public site expects on first boot.
func Defaults() []settingService.Default {
	return []settingService.Default{
		{Key: "site.name", Value: configs.OrgName, Description: "Organisation name shown in the header", IsPublic: true},
		{Key: "site.tagline", Value: "", Description: "Short tagline under the name", IsPublic: true},
		{Key: "contact.email", Value: configs.LoadMailConfig().AdminAddress, Description: "Public contact address", IsPublic: true},
		{Key: "contact.phone", Value: "", IsPublic: true},
		{Key: "contact.address", Value: "", IsPublic: true},
		{Key: "social.links", Value: map[string]string{}, Description: "Social network URLs keyed by network", IsPublic: true},
		{Key: "donation.preset_amounts", Value: []int{25, 50, 100, 250}, Description: "Amounts offered on the donation form", IsPublic: true},
		{Key: "donation.default_currency", Value: configs.LoadStripeConfig().Currency, IsPublic: true},
		{Key: "zakat.nisab_gold_grams", Value: 85, Description: "Gold nisab threshold in grams", IsPublic: true},
		{Key: "zakat.nisab_silver_grams", Value: 595, Description: "Silver nisab threshold in grams", IsPublic: true},
		{Key: "admin.notes", Value: "", Description: "Internal notes for staff"},
	}
}

func SeedSettings(ctx context.Context, db *gorm.DB) error {
	return settingService.EnsureDefaults(ctx, db, Defaults())
}
