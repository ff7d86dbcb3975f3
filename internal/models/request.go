package models

type DraftPatchRequest struct {
	PhotoType       *string  `json:"photo_type,omitempty"`
	PackageID       *string  `json:"package_id,omitempty"`
	AddAddonIDs     []string `json:"add_addon_ids,omitempty"`
	RemoveAddonIDs  []string `json:"remove_addon_ids,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Company         *string  `json:"company,omitempty"`
	ObjectReference *string  `json:"object_reference,omitempty"`
	SpecialRequests *string  `json:"special_requests,omitempty"`
	TermsAccepted   *bool    `json:"terms_accepted,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note,omitempty"`
}

type RedeemReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type ChatMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message" binding:"required"`
}
