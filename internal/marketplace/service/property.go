package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// PropertyFields carries the client-supplied listing fields. Nil means
// "not provided".
type PropertyFields struct {
	Title        *string
	Description  *string
	PropertyType *string
	ListingType  *string
	Bedrooms     *string
	PostedBy     *string
	Price        *float64
	Negotiable   *bool
	Deposit      *float64
	Maintenance  *float64
	CarpetArea   *float64
	BuiltUpArea  *float64
	Furnishing   *string
	Facing       *string
	Status       *string
	Amenities    *[]string

	AddressLine1 *string
	AddressLine2 *string
	Landmark     *string
	Locality     *string
	City         *string
	State        *string
	Country      *string
	Pincode      *string

	SellerName  *string
	SellerPhone *string
	SellerEmail *string
}

func (f PropertyFields) apply(p *domain.Property) {
	set(&p.Title, f.Title)
	set(&p.Description, f.Description)
	set(&p.PropertyType, f.PropertyType)
	set(&p.ListingType, f.ListingType)
	set(&p.Bedrooms, f.Bedrooms)
	set(&p.PostedBy, f.PostedBy)
	set(&p.Price, f.Price)
	set(&p.Negotiable, f.Negotiable)
	set(&p.Deposit, f.Deposit)
	set(&p.Maintenance, f.Maintenance)
	set(&p.CarpetArea, f.CarpetArea)
	set(&p.BuiltUpArea, f.BuiltUpArea)
	set(&p.Furnishing, f.Furnishing)
	set(&p.Facing, f.Facing)
	set(&p.Status, f.Status)
	set(&p.Amenities, f.Amenities)

	set(&p.Address.AddressLine1, f.AddressLine1)
	set(&p.Address.AddressLine2, f.AddressLine2)
	set(&p.Address.Landmark, f.Landmark)
	set(&p.Address.Locality, f.Locality)
	set(&p.Address.City, f.City)
	set(&p.Address.State, f.State)
	set(&p.Address.Country, f.Country)
	set(&p.Address.Pincode, f.Pincode)

	set(&p.SellerName, f.SellerName)
	set(&p.SellerPhone, f.SellerPhone)
	set(&p.SellerEmail, f.SellerEmail)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Uploads groups the files attached to a request.
type Uploads struct {
	Images  []media.File
	Videos  []media.File
	BaseURL string
}

type PropertyService struct {
	Store  store.Store
	Media  media.Storage
	Policy policy.Policy
	Events events.Publisher
	Now    func() time.Time
}

// Create adds a listing owned by actor. A listing matching an existing one
// by the same owner updates that one instead and reports duplicate=true.
func (s *PropertyService) Create(ctx context.Context, actor policy.Actor, f PropertyFields, up Uploads) (domain.Property, bool, error) {
	p := domain.Property{
		PostedBy:  "owner",
		Status:    "Available",
		Amenities: []string{},
		Images:    []string{},
		Videos:    []string{},
		Address:   domain.Address{Country: "India"},
		Owner:     actor.ID,
	}
	f.apply(&p)
	if strings.TrimSpace(p.Title) == "" || p.Address.AddressLine1 == "" || p.Address.City == "" ||
		p.PropertyType == "" || p.Bedrooms == "" || f.Price == nil {
		return domain.Property{}, false, ErrPropertyFields
	}
	if err := validateProperty(p); err != nil {
		return domain.Property{}, false, err
	}

	images, videos, err := s.storeUploads(ctx, up)
	if err != nil {
		return domain.Property{}, false, err
	}

	now := now(s.Now)
	existing, err := s.Store.Properties().FindDuplicate(ctx, p.DuplicateKey())
	switch {
	case err == nil:
		f.apply(&existing)
		s.appendMedia(ctx, &existing, images, videos)
		existing.UpdatedAt = now
		if err := s.Store.Properties().UpdateProperty(ctx, existing); err != nil {
			return domain.Property{}, false, apperr.Internal(err)
		}
		return existing, true, nil
	case !errors.Is(err, store.ErrNotFound):
		return domain.Property{}, false, apperr.Internal(err)
	}

	p.ID = idx.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.appendMedia(ctx, &p, images, videos)
	if err := s.Store.Properties().CreateProperty(ctx, p); err != nil {
		return domain.Property{}, false, apperr.Internal(err)
	}

	events.Emit(ctx, s.Events, events.PropertyCreated, map[string]any{"property_id": p.ID, "owner": p.Owner})
	slogx.FromContext(ctx).Info("property created", "property_id", p.ID)
	return p, false, nil
}

func (s *PropertyService) List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	ps, err := s.Store.Properties().ListProperties(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ps, nil
}

// Get returns a listing and counts the view.
func (s *PropertyService) Get(ctx context.Context, id string) (domain.Property, error) {
	if id == "" {
		return domain.Property{}, ErrInvalidID
	}
	if err := s.Store.Properties().IncrementViews(ctx, id); err != nil {
		return domain.Property{}, propertyErr(err)
	}
	p, err := s.Store.Properties().GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, propertyErr(err)
	}
	return p, nil
}

// Update changes the provided fields and appends any new media.
func (s *PropertyService) Update(ctx context.Context, actor policy.Actor, id string, f PropertyFields, up Uploads) (domain.Property, error) {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.Property{}, err
	}
	f.apply(&p)
	if err := validateProperty(p); err != nil {
		return domain.Property{}, err
	}

	images, videos, err := s.storeUploads(ctx, up)
	if err != nil {
		return domain.Property{}, err
	}
	s.appendMedia(ctx, &p, images, videos)
	p.UpdatedAt = now(s.Now)

	if err := s.Store.Properties().UpdateProperty(ctx, p); err != nil {
		return domain.Property{}, propertyErr(err)
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Store.Properties().DeleteProperty(ctx, id); err != nil {
		return propertyErr(err)
	}
	slogx.FromContext(ctx).Info("property deleted", "property_id", id)
	return nil
}

// Approve marks a listing approved. Only the admin may approve, owners
// included.
func (s *PropertyService) Approve(ctx context.Context, actor policy.Actor, id string) (domain.Property, error) {
	if !s.Policy.CanApprove(actor) {
		return domain.Property{}, ErrNotAuthorized
	}
	p, err := s.Store.Properties().GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, propertyErr(err)
	}

	now := now(s.Now)
	p.IsApproved = true
	p.ApprovedBy = actor.ID
	p.ApprovalDate = &now
	p.UpdatedAt = now
	if err := s.Store.Properties().UpdateProperty(ctx, p); err != nil {
		return domain.Property{}, propertyErr(err)
	}

	events.Emit(ctx, s.Events, events.PropertyApproved, map[string]any{"property_id": p.ID, "approved_by": actor.ID})
	return p, nil
}

func (s *PropertyService) owned(ctx context.Context, actor policy.Actor, id string) (domain.Property, error) {
	if id == "" {
		return domain.Property{}, ErrInvalidID
	}
	p, err := s.Store.Properties().GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, propertyErr(err)
	}
	if !s.Policy.CanMutate(actor, p.Owner) {
		return domain.Property{}, ErrNotAuthorized
	}
	return p, nil
}

func (s *PropertyService) storeUploads(ctx context.Context, up Uploads) ([]string, []string, error) {
	if len(up.Images) == 0 && len(up.Videos) == 0 {
		return nil, nil, nil
	}
	images, err := storeFiles(ctx, s.Media, up.Images, up.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	videos, err := storeFiles(ctx, s.Media, up.Videos, up.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	return images, videos, nil
}

func (s *PropertyService) appendMedia(ctx context.Context, p *domain.Property, images, videos []string) {
	if p.AppendMedia(images, videos) {
		slogx.FromContext(ctx).Warn("media over limit dropped", "property_id", p.ID)
	}
}

func validateProperty(p domain.Property) error {
	switch {
	case p.PropertyType != "" && !domain.ValidPropertyType(p.PropertyType):
		return apperr.Validation("Invalid property type")
	case p.ListingType != "" && !domain.ValidListingType(p.ListingType):
		return apperr.Validation("Invalid listing type")
	case p.Bedrooms != "" && !domain.ValidBedrooms(p.Bedrooms):
		return apperr.Validation("Invalid bedrooms value")
	case p.Status != "" && !domain.ValidStatus(p.Status):
		return apperr.Validation("Invalid property status")
	case p.Price < 0:
		return apperr.Validation("Price cannot be negative")
	}
	return nil
}

func propertyErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrPropertyNotFound
	}
	return apperr.Internal(err)
}
