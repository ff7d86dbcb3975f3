package wizard

import "github.com/google/uuid"

// CanProceed reports whether the given step is satisfied by the draft state.
// Each predicate looks only at the fields its step collects:
//
//	photo-type  a valid photo type is selected
//	upload      at least one file is uploaded
//	package     a package is selected
//	extras      nothing required
//	summary     the terms checkbox is accepted
//
// There is no predicate for the confirmation step; it is unreachable without
// completing summary, so CanProceed returns false there.
func CanProceed(step Step, s Snapshot) bool {
	switch step {
	case StepPhotoType:
		return s.PhotoType.Valid()
	case StepUpload:
		return len(s.Files) > 0
	case StepPackage:
		return s.PackageID != uuid.Nil
	case StepExtras:
		return true
	case StepSummary:
		return s.TermsAccepted
	default:
		return false
	}
}
