package domain

import (
	"slices"
	"time"
)

var PropertyTypes = []string{
	"Apartment", "Studio", "Independent House", "Villa", "Plot",
	"Commercial Office", "Commercial Shop", "Warehouse", "Industrial Land", "Farmhouse",
}

var ListingTypes = []string{"Sale", "Rent", "Lease"}

var BedroomOptions = []string{
	"1 BHK", "2 BHK", "3 BHK", "4 BHK", "5 BHK", "6 BHK+", "Studio", "Independent Floor",
}

var PropertyStatuses = []string{"Available", "Sold", "Rented"}

// Media limits per property.
const (
	MaxPropertyImages = 10
	MaxPropertyVideos = 5
)

type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	Locality     string `json:"locality,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode,omitempty"`
}

type Property struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	PropertyType string  `json:"propertyType"`
	ListingType  string  `json:"listingType,omitempty"`
	Bedrooms     string  `json:"bedrooms"`
	PostedBy     string  `json:"postedBy"`
	Price        float64 `json:"price"`
	Negotiable   bool    `json:"negotiable"`
	Deposit      float64 `json:"deposit,omitempty"`
	Maintenance  float64 `json:"maintenance,omitempty"`
	Address      Address `json:"address"`
	CarpetArea   float64 `json:"carpetArea,omitempty"`
	BuiltUpArea  float64 `json:"builtUpArea,omitempty"`
	Furnishing   string  `json:"furnishing,omitempty"`
	Facing       string  `json:"facing,omitempty"`

	Amenities []string `json:"amenities"`
	Images    []string `json:"images"`
	Videos    []string `json:"videos"`

	Status       string     `json:"status"`
	IsApproved   bool       `json:"isApproved"`
	ApprovedBy   string     `json:"approvedBy,omitempty"`
	ApprovalDate *time.Time `json:"approvalDate,omitempty"`
	ViewsCount   int        `json:"viewsCount"`

	SellerName  string `json:"sellerName,omitempty"`
	SellerPhone string `json:"sellerPhone,omitempty"`
	SellerEmail string `json:"sellerEmail,omitempty"`

	// Owner is the creating user's id and never changes.
	Owner string `json:"user"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PropertyFilter narrows a listing. Zero values match everything.
type PropertyFilter struct {
	City        string
	ListingType string
	Approved    *bool
	Owner       string
}

// DuplicateKey is what makes two listings by the same owner the same
// listing.
type DuplicateKey struct {
	Owner        string
	Title        string
	PropertyType string
	AddressLine1 string
	City         string
	Bedrooms     string
	Price        float64
}

func (p Property) DuplicateKey() DuplicateKey {
	return DuplicateKey{
		Owner:        p.Owner,
		Title:        p.Title,
		PropertyType: p.PropertyType,
		AddressLine1: p.Address.AddressLine1,
		City:         p.Address.City,
		Bedrooms:     p.Bedrooms,
		Price:        p.Price,
	}
}

// AppendMedia adds urls up to the per-property limits and reports whether
// any were dropped.
func (p *Property) AppendMedia(images, videos []string) (truncated bool) {
	p.Images, truncated = appendCapped(p.Images, images, MaxPropertyImages)
	var t bool
	p.Videos, t = appendCapped(p.Videos, videos, MaxPropertyVideos)
	return truncated || t
}

func appendCapped(dst, src []string, limit int) ([]string, bool) {
	room := limit - len(dst)
	if room <= 0 {
		return dst, len(src) > 0
	}
	if len(src) > room {
		return append(dst, src[:room]...), true
	}
	return append(dst, src...), false
}

func ValidPropertyType(s string) bool { return slices.Contains(PropertyTypes, s) }
func ValidListingType(s string) bool  { return slices.Contains(ListingTypes, s) }
func ValidBedrooms(s string) bool     { return slices.Contains(BedroomOptions, s) }
func ValidStatus(s string) bool       { return slices.Contains(PropertyStatuses, s) }
