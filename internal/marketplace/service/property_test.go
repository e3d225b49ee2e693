package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
)

func validListing() PropertyFields {
	return PropertyFields{
		Title:        ptr("Sunny 2BHK"),
		PropertyType: ptr("Apartment"),
		ListingType:  ptr("Rent"),
		Bedrooms:     ptr("2 BHK"),
		Price:        ptr(25000.0),
		AddressLine1: ptr("12 MG Road"),
		City:         ptr("Pune"),
	}
}

func image(name string) media.File {
	return media.File{Filename: name, Size: 10, Body: strings.NewReader("0123456789")}
}

func TestPropertyService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	svc := &PropertyService{Store: f.store, Media: &stubStorage{}, Policy: f.policy, Events: f.events, Now: f.clock.Now}

	owner := policy.ActorFromUser(f.seedUser(t, "9111111111", domain.RoleSeller))
	other := policy.ActorFromUser(f.seedUser(t, "9222222222", domain.RoleBuyer))
	admin := policy.Actor{ID: "admin-id", Phone: adminPhone}

	var created domain.Property

	t.Run("required fields", func(t *testing.T) {
		fields := validListing()
		fields.City = nil
		_, _, err := svc.Create(ctx, owner, fields, Uploads{})
		require.ErrorIs(t, err, ErrPropertyFields)

		fields = validListing()
		fields.Price = nil
		_, _, err = svc.Create(ctx, owner, fields, Uploads{})
		require.ErrorIs(t, err, ErrPropertyFields)
	})

	t.Run("enum validation", func(t *testing.T) {
		fields := validListing()
		fields.PropertyType = ptr("Castle")
		_, _, err := svc.Create(ctx, owner, fields, Uploads{})
		require.Error(t, err)
	})

	t.Run("create", func(t *testing.T) {
		p, dup, err := svc.Create(ctx, owner, validListing(), Uploads{
			Images:  []media.File{image("a.jpg")},
			BaseURL: "https://api.example.com",
		})
		require.NoError(t, err)
		require.False(t, dup)
		require.False(t, p.IsApproved)
		require.Equal(t, owner.ID, p.Owner)
		require.Equal(t, "India", p.Address.Country)
		require.Equal(t, "owner", p.PostedBy)
		require.Equal(t, []string{"https://api.example.com/uploads/1.jpg"}, p.Images)
		created = p
	})

	t.Run("duplicate updates in place", func(t *testing.T) {
		fields := validListing()
		fields.Description = ptr("now with balcony")
		p, dup, err := svc.Create(ctx, owner, fields, Uploads{Images: []media.File{image("b.png")}})
		require.NoError(t, err)
		require.True(t, dup)
		require.Equal(t, created.ID, p.ID)
		require.Equal(t, "now with balcony", p.Description)
		require.Len(t, p.Images, 2)
	})

	t.Run("unsupported upload", func(t *testing.T) {
		_, _, err := svc.Create(ctx, owner, validListing(), Uploads{Images: []media.File{image("x.exe")}})
		require.ErrorIs(t, err, ErrUploadType)
	})

	t.Run("get counts views", func(t *testing.T) {
		p, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, 1, p.ViewsCount)
		p, err = svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, 2, p.ViewsCount)

		_, err = svc.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("update needs ownership", func(t *testing.T) {
		_, err := svc.Update(ctx, other, created.ID, PropertyFields{Title: ptr("mine now")}, Uploads{})
		require.ErrorIs(t, err, ErrNotAuthorized)

		p, err := svc.Update(ctx, owner, created.ID, PropertyFields{Status: ptr("Rented")}, Uploads{})
		require.NoError(t, err)
		require.Equal(t, "Rented", p.Status)

		p, err = svc.Update(ctx, admin, created.ID, PropertyFields{Negotiable: ptr(true)}, Uploads{})
		require.NoError(t, err)
		require.True(t, p.Negotiable)
		require.Equal(t, owner.ID, p.Owner)
	})

	t.Run("approve is admin only", func(t *testing.T) {
		_, err := svc.Approve(ctx, owner, created.ID)
		require.ErrorIs(t, err, ErrNotAuthorized)

		p, err := svc.Approve(ctx, admin, created.ID)
		require.NoError(t, err)
		require.True(t, p.IsApproved)
		require.Equal(t, admin.ID, p.ApprovedBy)
		require.NotNil(t, p.ApprovalDate)

		approved := true
		list, err := svc.List(ctx, domain.PropertyFilter{Approved: &approved})
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, other, created.ID), ErrNotAuthorized)
		require.NoError(t, svc.Delete(ctx, owner, created.ID))
		require.ErrorIs(t, svc.Delete(ctx, owner, created.ID), ErrPropertyNotFound)
		require.Equal(t, []string{events.PropertyCreated, events.PropertyApproved}, f.events.Names())
	})
}

func TestPropertyMediaLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	svc := &PropertyService{Store: f.store, Media: &stubStorage{}, Policy: f.policy, Now: f.clock.Now}
	owner := policy.ActorFromUser(f.seedUser(t, "9111111111", domain.RoleSeller))

	var files []media.File
	for range domain.MaxPropertyImages + 3 {
		files = append(files, image("p.webp"))
	}
	p, _, err := svc.Create(ctx, owner, validListing(), Uploads{Images: files})
	require.NoError(t, err)
	require.Len(t, p.Images, domain.MaxPropertyImages)
}
