package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/wizard"
)

func TestMeta_AdvanceWalksTheFlow(t *testing.T) {
	meta := wizard.NewMeta()
	assert.Equal(t, wizard.StepPhotoType, meta.Current())

	assert.Equal(t, wizard.StepUpload, meta.Advance())
	assert.Equal(t, wizard.StepPackage, meta.Advance())
	assert.Equal(t, wizard.StepExtras, meta.Advance())
	assert.Equal(t, wizard.StepSummary, meta.Advance())
	assert.Equal(t, wizard.StepConfirmation, meta.Advance())
}

func TestMeta_AdvanceIsNoOpAtConfirmation(t *testing.T) {
	meta := wizard.NewMeta()
	for range wizard.Steps() {
		meta.Advance()
	}
	assert.Equal(t, wizard.StepConfirmation, meta.Current())
	assert.Equal(t, wizard.StepConfirmation, meta.Advance())
}

func TestMeta_RetreatIsNoOpAtConfirmation(t *testing.T) {
	meta := wizard.NewMeta()
	for range wizard.Steps() {
		meta.Advance()
	}
	assert.Equal(t, wizard.StepConfirmation, meta.Current())

	assert.Equal(t, wizard.StepConfirmation, meta.Retreat())
	assert.Equal(t, wizard.StepConfirmation, meta.Current())

	meta.Reset()
	assert.Equal(t, wizard.StepPhotoType, meta.Current())
}

func TestMeta_RetreatPopsHistory(t *testing.T) {
	meta := wizard.NewMeta()
	meta.Advance()
	meta.Advance()
	assert.Equal(t, wizard.StepPackage, meta.Current())

	assert.Equal(t, wizard.StepUpload, meta.Retreat())
	assert.Equal(t, wizard.StepPhotoType, meta.Retreat())
	// no history left
	assert.Equal(t, wizard.StepPhotoType, meta.Retreat())
}

func TestMeta_Reset(t *testing.T) {
	meta := wizard.NewMeta()
	meta.Advance()
	meta.Advance()
	meta.Reset()

	assert.Equal(t, wizard.StepPhotoType, meta.Current())
	assert.Empty(t, meta.History())
}

func TestMeta_State(t *testing.T) {
	meta := wizard.NewMeta()
	meta.Advance()
	meta.Advance()

	assert.Equal(t, wizard.StateCompleted, meta.State(wizard.StepPhotoType))
	assert.Equal(t, wizard.StateCompleted, meta.State(wizard.StepUpload))
	assert.Equal(t, wizard.StateCurrent, meta.State(wizard.StepPackage))
	assert.Equal(t, wizard.StateUpcoming, meta.State(wizard.StepSummary))
}
