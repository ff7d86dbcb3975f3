package wizard_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/models"
	"renovirt-backend/internal/wizard"
)

func TestEffectiveImageCount_SingleExposure(t *testing.T) {
	assert.Equal(t, 12, wizard.EffectiveImageCount(wizard.PhotoTypePhone, 12))
	assert.Equal(t, 0, wizard.EffectiveImageCount(wizard.PhotoTypeCamera, 0))
}

func TestEffectiveImageCount_Bracketing(t *testing.T) {
	// 9 files in groups of 3 produce 3 billable images
	assert.Equal(t, 3, wizard.EffectiveImageCount(wizard.PhotoTypeBracketing3, 9))
	// a partial trailing group is not billed
	assert.Equal(t, 2, wizard.EffectiveImageCount(wizard.PhotoTypeBracketing3, 7))
	assert.Equal(t, 0, wizard.EffectiveImageCount(wizard.PhotoTypeBracketing3, 2))
	assert.Equal(t, 2, wizard.EffectiveImageCount(wizard.PhotoTypeBracketing5, 11))
}

func snapshotWithFiles(photoType wizard.PhotoType, pkgID uuid.UUID, fileCount int) wizard.Snapshot {
	files := make([]wizard.FileRef, fileCount)
	for i := range files {
		files[i] = wizard.FileRef{Filename: "img.jpg"}
	}
	return wizard.Snapshot{
		PhotoType: photoType,
		PackageID: pkgID,
		Files:     files,
	}
}

func TestComputeQuote_CreditsReduceTotal(t *testing.T) {
	pkg := &models.Package{ID: uuid.New(), PriceCentsEach: 1000}
	snap := snapshotWithFiles(wizard.PhotoTypeCamera, pkg.ID, 5)

	// 50 euros gross, 20 credits applied, 30 euros to pay
	quote, ok := wizard.ComputeQuote(snap, wizard.PriceInput{
		Package:       pkg,
		Credits:       20,
		CreditsLoaded: true,
	})
	assert.True(t, ok)
	assert.Equal(t, 5, quote.ImageCount)
	assert.Equal(t, int64(5000), quote.GrossCents)
	assert.Equal(t, int64(2000), quote.CreditCentsApplied)
	assert.Equal(t, int64(3000), quote.FinalCents)
}

func TestComputeQuote_CreditsNeverOvershoot(t *testing.T) {
	pkg := &models.Package{ID: uuid.New(), PriceCentsEach: 1000}
	snap := snapshotWithFiles(wizard.PhotoTypeCamera, pkg.ID, 1)

	// 10 euros gross against a 50 credit balance settles at zero, not negative
	quote, ok := wizard.ComputeQuote(snap, wizard.PriceInput{
		Package:       pkg,
		Credits:       50,
		CreditsLoaded: true,
	})
	assert.True(t, ok)
	assert.Equal(t, int64(1000), quote.GrossCents)
	assert.Equal(t, int64(1000), quote.CreditCentsApplied)
	assert.Equal(t, int64(0), quote.FinalCents)
}

func TestComputeQuote_AddonsPricedPerImage(t *testing.T) {
	pkg := &models.Package{ID: uuid.New(), PriceCentsEach: 900}
	addon := models.Addon{ID: uuid.New(), PriceCentsEach: 400}
	other := models.Addon{ID: uuid.New(), PriceCentsEach: 2500}

	snap := snapshotWithFiles(wizard.PhotoTypeCamera, pkg.ID, 3)
	snap.AddonIDs = []uuid.UUID{addon.ID}

	quote, ok := wizard.ComputeQuote(snap, wizard.PriceInput{
		Package:       pkg,
		Addons:        []models.Addon{addon, other},
		CreditsLoaded: true,
	})
	assert.True(t, ok)
	assert.Equal(t, int64((900+400)*3), quote.GrossCents)
}

func TestComputeQuote_BracketingCollapsesGroups(t *testing.T) {
	pkg := &models.Package{ID: uuid.New(), PriceCentsEach: 1000}
	snap := snapshotWithFiles(wizard.PhotoTypeBracketing3, pkg.ID, 7)

	quote, ok := wizard.ComputeQuote(snap, wizard.PriceInput{
		Package:       pkg,
		CreditsLoaded: true,
	})
	assert.True(t, ok)
	assert.Equal(t, 2, quote.ImageCount)
	assert.Equal(t, int64(2000), quote.GrossCents)
}

func TestComputeQuote_NoQuoteWhileCreditsLoading(t *testing.T) {
	pkg := &models.Package{ID: uuid.New(), PriceCentsEach: 1000}
	snap := snapshotWithFiles(wizard.PhotoTypeCamera, pkg.ID, 5)

	_, ok := wizard.ComputeQuote(snap, wizard.PriceInput{
		Package:       pkg,
		Credits:       20,
		CreditsLoaded: false,
	})
	assert.False(t, ok)
}

func TestComputeQuote_NoQuoteWithoutPackage(t *testing.T) {
	snap := snapshotWithFiles(wizard.PhotoTypeCamera, uuid.Nil, 5)

	_, ok := wizard.ComputeQuote(snap, wizard.PriceInput{CreditsLoaded: true})
	assert.False(t, ok)
}
