package wizard

import (
	"github.com/google/uuid"

	"renovirt-backend/internal/models"
)

// centsPerCredit: one credit offsets one euro of gross price.
const centsPerCredit = 100

// EffectiveImageCount returns the billable image count. For bracketing photo
// types the uploaded files collapse into fixed-size exposure groups; a partial
// trailing group is dropped from the billable count.
func EffectiveImageCount(photoType PhotoType, fileCount int) int {
	groupSize := photoType.GroupSize()
	if groupSize <= 1 {
		return fileCount
	}
	return fileCount / groupSize
}

// PriceInput carries the externally fetched reference data a quote needs.
// CreditsLoaded guards against quoting with the full gross amount before the
// credit balance is known.
type PriceInput struct {
	Package       *models.Package
	Addons        []models.Addon
	Credits       int64
	CreditsLoaded bool
}

// Quote is the derived price of a draft. All amounts are euro cents.
type Quote struct {
	ImageCount         int
	GrossCents         int64
	CreditCentsApplied int64
	FinalCents         int64
}

// ComputeQuote derives the price from the draft snapshot and reference data.
// It returns ok=false when the inputs are incomplete (no package selected yet,
// or credits still loading); callers treat that as "no quote yet", never as a
// zero price.
func ComputeQuote(s Snapshot, in PriceInput) (Quote, bool) {
	if !in.CreditsLoaded || in.Package == nil || s.PackageID == uuid.Nil {
		return Quote{}, false
	}

	count := EffectiveImageCount(s.PhotoType, len(s.Files))

	perImage := in.Package.PriceCentsEach
	selected := make(map[uuid.UUID]struct{}, len(s.AddonIDs))
	for _, id := range s.AddonIDs {
		selected[id] = struct{}{}
	}
	for _, addon := range in.Addons {
		if _, ok := selected[addon.ID]; ok {
			perImage += addon.PriceCentsEach
		}
	}

	gross := perImage * int64(count)
	if gross < 0 {
		gross = 0
	}

	applied := in.Credits * centsPerCredit
	if applied > gross {
		applied = gross
	}
	if applied < 0 {
		applied = 0
	}

	return Quote{
		ImageCount:         count,
		GrossCents:         gross,
		CreditCentsApplied: applied,
		FinalCents:         gross - applied,
	}, true
}
