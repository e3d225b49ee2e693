package http_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/stretchr/testify/require"
)

// nested mirrors what the web client sends: address fields under "address".
func listing(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"propertyType": "Apartment",
		"listingType":  "Sale",
		"bedrooms":     "2 BHK",
		"price":        4500000,
		"amenities":    []string{"Lift", "Parking"},
		"address": map[string]any{
			"addressLine1": "12 MG Road",
			"city":         "Pune",
		},
	}
}

type upload struct {
	field, name string
	body        []byte
}

func (h *harness) multipart(t *testing.T, method, path, token string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func TestPropertyLifecycle(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	seller := h.login(t, sellerPhone, "seller")
	buyer := h.login(t, buyerPhone, "buyer")
	admin := h.login(t, adminPhone, "")

	rec := h.do(t, http.MethodPost, "/api/properties", seller.AccessToken, listing("Sunny 2BHK"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[estatesdk.PropertyResponse](t, rec)
	require.Equal(t, "Property added successfully", created.Message)
	p := created.Property
	require.NotEmpty(t, p.ID)
	require.Equal(t, seller.User.ID, p.Owner)
	require.Equal(t, "Pune", p.Address.City)
	require.Equal(t, "India", p.Address.Country)
	require.Equal(t, "Available", p.Status)
	require.Equal(t, []string{"Lift", "Parking"}, p.Amenities)
	require.False(t, p.IsApproved)

	// The same listing again updates the first one.
	rec = h.do(t, http.MethodPost, "/api/properties", seller.AccessToken, listing("Sunny 2BHK"))
	require.Equal(t, http.StatusOK, rec.Code)
	dup := decode[estatesdk.PropertyResponse](t, rec)
	require.Equal(t, p.ID, dup.Property.ID)

	// Reads are public and count views.
	rec = h.do(t, http.MethodGet, "/api/properties/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[estatesdk.PropertyResponse](t, rec).Property.ViewsCount)

	list := func(query string) estatesdk.PropertyListResponse {
		rec := h.do(t, http.MethodGet, "/api/properties?"+query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[estatesdk.PropertyListResponse](t, rec)
	}
	require.Equal(t, 1, list("approved=false").Count)
	require.Equal(t, 0, list("approved=true").Count)
	require.Equal(t, 1, list("city=pune").Count)
	require.Equal(t, 0, list("city=Mumbai").Count)

	// Only the owner edits, only the admin approves.
	rec = h.do(t, http.MethodPut, "/api/properties/"+p.ID, buyer.AccessToken, map[string]any{"price": 1})
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.do(t, http.MethodPost, "/api/properties/"+p.ID+"/approve", seller.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodPut, "/api/properties/"+p.ID, seller.AccessToken, map[string]any{"price": 4200000, "status": "Sold"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[estatesdk.PropertyResponse](t, rec).Property
	require.InDelta(t, 4200000, updated.Price, 0.001)
	require.Equal(t, "Sold", updated.Status)
	require.Equal(t, seller.User.ID, updated.Owner)

	rec = h.do(t, http.MethodPost, "/api/properties/"+p.ID+"/approve", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decode[estatesdk.PropertyResponse](t, rec).Property
	require.True(t, approved.IsApproved)
	require.Equal(t, admin.User.ID, approved.ApprovedBy)
	require.Equal(t, 1, list("approved=true").Count)

	rec = h.do(t, http.MethodDelete, "/api/properties/"+p.ID, buyer.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.do(t, http.MethodDelete, "/api/properties/"+p.ID, seller.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/properties/"+p.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Property not found", decode[estatesdk.MessageResponse](t, rec).Message)
}

func TestCreatePropertyRejects(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	seller := h.login(t, sellerPhone, "seller")

	rec := h.do(t, http.MethodPost, "/api/properties", "", listing("No token"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"missing city", func(m map[string]any) { delete(m["address"].(map[string]any), "city") }, "Please provide all required property details"},
		{"missing price", func(m map[string]any) { delete(m, "price") }, "Please provide all required property details"},
		{"bad type", func(m map[string]any) { m["propertyType"] = "Castle" }, "Invalid property type"},
		{"negative price", func(m map[string]any) { m["price"] = -5 }, "Price cannot be negative"},
		{"price not a number", func(m map[string]any) { m["price"] = "cheap" }, "Invalid value for price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := listing("Rejected")
			tt.mutate(body)
			rec := h.do(t, http.MethodPost, "/api/properties", seller.AccessToken, body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, tt.message, decode[estatesdk.MessageResponse](t, rec).Message)
		})
	}
}

func TestPropertyUploads(t *testing.T) {
	t.Parallel()
	h := newHarness(t, withDiskUploads(t))
	seller := h.login(t, sellerPhone, "seller")

	fields := map[string]string{
		"title":        "Garden villa",
		"propertyType": "Villa",
		"bedrooms":     "4 BHK",
		"price":        "9900000",
		"addressLine1": "3 Lake View",
		"city":         "Nashik",
		"amenities":    `["Garden","Pool"]`,
	}
	photo := []byte("not really a jpeg")

	rec := h.multipart(t, http.MethodPost, "/api/properties", seller.AccessToken, fields,
		upload{field: "images", name: "front.jpg", body: photo},
		upload{field: "videos", name: "tour.mp4", body: []byte("frames")},
	)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[estatesdk.PropertyResponse](t, rec).Property
	require.Equal(t, []string{"Garden", "Pool"}, p.Amenities)
	require.Len(t, p.Images, 1)
	require.Len(t, p.Videos, 1)
	require.True(t, strings.HasPrefix(p.Images[0], "http://example.com/uploads/"), p.Images[0])
	require.True(t, strings.HasSuffix(p.Videos[0], ".mp4"))

	// Stored files are served back.
	u, err := url.Parse(p.Images[0])
	require.NoError(t, err)
	rec = h.do(t, http.MethodGet, u.Path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Equal(t, photo, got)

	rec = h.multipart(t, http.MethodPost, "/api/properties", seller.AccessToken, fields,
		upload{field: "images", name: "notes.txt", body: []byte("hello")},
	)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Only image and video files are allowed", decode[estatesdk.MessageResponse](t, rec).Message)
}

func TestUploadsDisabled(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	seller := h.login(t, sellerPhone, "seller")

	rec := h.multipart(t, http.MethodPost, "/api/properties", seller.AccessToken, map[string]string{
		"title":        "Flat",
		"propertyType": "Apartment",
		"bedrooms":     "1 BHK",
		"price":        "100",
		"addressLine1": "1 Main St",
		"city":         "Pune",
	}, upload{field: "images", name: "a.png", body: []byte("png")})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "File uploads are disabled on this deployment", decode[estatesdk.MessageResponse](t, rec).Message)
}
