package estatesdk

import "time"

// MessageResponse is the envelope every endpoint shares. Failed requests
// carry only this, with Success false.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Ledger   string `json:"ledger"`
	Storage  string `json:"storage"`
}

// ============================================================================
// Auth
// ============================================================================

type SendOTPRequest struct {
	Phone string `json:"phone"`
	Role  string `json:"role,omitempty"`
}

type SendOTPResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	ExpiresAt time.Time `json:"expiresAt"`

	// DebugOTP is only present outside production.
	DebugOTP string `json:"debugOtp,omitempty"`

	// Warning is set when the SMS could not be delivered. The code is
	// still valid.
	Warning string `json:"warning,omitempty"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
	Role  string `json:"role,omitempty"`

	// TOTP is the admin second factor, when one is configured.
	TOTP string `json:"totp,omitempty"`
}

type User struct {
	ID            string     `json:"id"`
	Phone         string     `json:"phone"`
	Roles         []string   `json:"roles"`
	IsVerified    bool       `json:"isVerified"`
	IsDeleted     bool       `json:"isDeleted"`
	LastOTPSentAt *time.Time `json:"lastOtpSentAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type VerifyOTPResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsAdmin      bool   `json:"isAdmin"`
	IsNewUser    bool   `json:"isNewUser"`

	// AllUsers is only sent to the admin.
	AllUsers []User `json:"allUsers,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ProfileResponse holds either the caller (User) or, for the admin, every
// account (Users).
type ProfileResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Users   []User `json:"users,omitempty"`
}

// ============================================================================
// Listings
// ============================================================================

type Address struct {
	AddressLine1 string `json:"addressLine1"`
	Locality     string `json:"locality,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode,omitempty"`
}

// Property is the client view of a listing.
type Property struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	PropertyType string   `json:"propertyType"`
	ListingType  string   `json:"listingType,omitempty"`
	Bedrooms     string   `json:"bedrooms"`
	Price        float64  `json:"price"`
	Address      Address  `json:"address"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Videos       []string `json:"videos"`
	Status       string   `json:"status"`
	IsApproved   bool     `json:"isApproved"`
	ApprovedBy   string   `json:"approvedBy,omitempty"`
	ViewsCount   int      `json:"viewsCount"`
	Owner        string   `json:"user"`
}

// PropertyRequest is the JSON form of a create or update. Zero fields are
// left out.
type PropertyRequest struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	ListingType  string   `json:"listingType,omitempty"`
	Bedrooms     string   `json:"bedrooms,omitempty"`
	Price        float64  `json:"price,omitempty"`
	AddressLine1 string   `json:"addressLine1,omitempty"`
	City         string   `json:"city,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Status       string   `json:"status,omitempty"`
}

type PropertyResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Property Property `json:"property"`
}

type PropertyListResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Count      int        `json:"count"`
	Properties []Property `json:"properties"`
}

type Agent struct {
	ID               string   `json:"id"`
	IsPropertyDealer string   `json:"isPropertyDealer"`
	AgentName        string   `json:"agentName"`
	FirmName         string   `json:"firmName,omitempty"`
	OperatingCity    string   `json:"operatingCity"`
	DealsIn          []string `json:"dealsIn"`
	Owner            string   `json:"user"`
}

type AgentRequest struct {
	IsPropertyDealer   string   `json:"isPropertyDealer,omitempty"`
	AgentName          string   `json:"agentName,omitempty"`
	FirmName           string   `json:"firmName,omitempty"`
	OperatingCity      string   `json:"operatingCity,omitempty"`
	OperatingAreaChips []string `json:"operatingAreaChips,omitempty"`
	DealsIn            []string `json:"dealsIn,omitempty"`
	AboutAgent         string   `json:"aboutAgent,omitempty"`
}

type AgentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Agent   Agent  `json:"agent"`
}

type AgentListResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Count   int     `json:"count"`
	Agents  []Agent `json:"agents"`
}

type Consultant struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	MoneyType string   `json:"moneyType"`
	Languages []string `json:"languages"`
	Image     string   `json:"image"`
	IDProof   string   `json:"idProof"`
	Location  string   `json:"location"`
	Owner     string   `json:"user"`
}

type ConsultantResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Consultant Consultant `json:"consultant"`
}

type ConsultantListResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Count       int          `json:"count"`
	Consultants []Consultant `json:"consultants"`
}

// ============================================================================
// Payments
// ============================================================================

type CreateOrderRequest struct {
	Amount float64 `json:"amount"`
}

type CreateOrderResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	OrderID  string `json:"orderId"`
	Key      string `json:"key"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type Payment struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId,omitempty"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

type VerifyPaymentResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Payment Payment `json:"payment"`
}
