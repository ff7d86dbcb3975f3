package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type PackageResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PriceCentsEach int64  `json:"price_cents_each"`
}

type AddonResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PriceCentsEach int64  `json:"price_cents_each"`
}

type CreditsResponse struct {
	Credits int64 `json:"credits"`
}

type ProfileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role"`
	Credits   int64  `json:"credits"`
}

type ReferralResponse struct {
	Code    string `json:"code"`
	Valid   bool   `json:"valid"`
	Credits int64  `json:"credits"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type QuoteResponse struct {
	ImageCount         int   `json:"image_count"`
	GrossCents         int64 `json:"gross_cents"`
	CreditCentsApplied int64 `json:"credit_cents_applied"`
	FinalCents         int64 `json:"final_cents"`
}

type StepInfo struct {
	Step  string `json:"step"`
	State string `json:"state"`
}

type DraftResponse struct {
	PhotoType       string          `json:"photo_type,omitempty"`
	Files           []DraftFileInfo `json:"files"`
	PackageID       string          `json:"package_id,omitempty"`
	AddonIDs        []string        `json:"addon_ids,omitempty"`
	HasWatermark    bool            `json:"has_watermark"`
	Email           string          `json:"email,omitempty"`
	Company         string          `json:"company,omitempty"`
	ObjectReference string          `json:"object_reference,omitempty"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	TermsAccepted   bool            `json:"terms_accepted"`
	CurrentStep     string          `json:"current_step"`
	Steps           []StepInfo      `json:"steps"`
}

type SubmitResponse struct {
	Order   OrderResponse          `json:"order"`
	Payment *PaymentIntentResponse `json:"payment,omitempty"`
}

type DraftFileInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadResponse struct {
	Files  []DraftFileInfo `json:"files"`
	Failed int             `json:"failed,omitempty"`
	Status string          `json:"status"`
}

type OrderResponse struct {
	ID                 string    `json:"order_id"`
	Status             string    `json:"status"`
	PhotoType          string    `json:"photo_type"`
	ImageCount         int       `json:"image_count"`
	GrossCents         int64     `json:"gross_cents"`
	CreditCentsApplied int64     `json:"credit_cents_applied"`
	FinalCents         int64     `json:"final_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type FileResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StorageURL  string    `json:"storage_url"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	IsProcessed bool      `json:"is_processed"`
	CreatedAt   time.Time `json:"created_at"`
}

type FilesResponse struct {
	Files []FileResponse `json:"files"`
}

type AdminOrderResponse struct {
	OrderResponse
	CustomerEmail   string `json:"customer_email"`
	CustomerName    string `json:"customer_name,omitempty"`
	Company         string `json:"company,omitempty"`
	ObjectReference string `json:"object_reference,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type AdminOrderListResponse struct {
	Orders []AdminOrderResponse `json:"orders"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
}

type ChatMessageResponse struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
}

type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}
