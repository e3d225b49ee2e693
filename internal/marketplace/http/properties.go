package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

type PropertiesHandler struct {
	PropertyService *service.PropertyService
}

type propertyResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Property domain.Property `json:"property"`
}

type propertyListResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Count      int               `json:"count"`
	Properties []domain.Property `json:"properties"`
}

func propertyFields(f *form) (service.PropertyFields, error) {
	out := service.PropertyFields{
		Title:        f.str("title"),
		Description:  f.str("description"),
		PropertyType: f.str("propertyType"),
		ListingType:  f.str("listingType"),
		Bedrooms:     f.str("bedrooms"),
		PostedBy:     f.str("postedBy"),
		Furnishing:   f.str("furnishing"),
		Facing:       f.str("facing"),
		Status:       f.str("status"),
		Amenities:    f.list("amenities"),
		AddressLine1: f.str("addressLine1"),
		AddressLine2: f.str("addressLine2"),
		Landmark:     f.str("landmark"),
		Locality:     f.str("locality"),
		City:         f.str("city"),
		State:        f.str("state"),
		Country:      f.str("country"),
		Pincode:      f.str("pincode"),
		SellerName:   f.str("sellerName"),
		SellerPhone:  f.str("sellerPhone"),
		SellerEmail:  f.str("sellerEmail"),
	}

	var errs [6]error
	out.Price, errs[0] = f.float("price")
	out.Deposit, errs[1] = f.float("deposit")
	out.Maintenance, errs[2] = f.float("maintenance")
	out.CarpetArea, errs[3] = f.float("carpetArea")
	out.BuiltUpArea, errs[4] = f.float("builtUpArea")
	out.Negotiable, errs[5] = f.bool("negotiable")
	return out, firstErr(errs[:]...)
}

// readPropertyRequest parses fields and opens uploads. The returned
// cleanup must always run.
func readPropertyRequest(w http.ResponseWriter, r *http.Request) (service.PropertyFields, service.Uploads, func(), error) {
	noop := func() {}
	f, err := readForm(w, r)
	if err != nil {
		return service.PropertyFields{}, service.Uploads{}, noop, err
	}

	fields, err := propertyFields(f)
	if err != nil {
		f.close()
		return service.PropertyFields{}, service.Uploads{}, noop, err
	}

	images, closeImages, err := f.mediaFiles("images")
	if err != nil {
		f.close()
		return service.PropertyFields{}, service.Uploads{}, noop, err
	}
	videos, closeVideos, err := f.mediaFiles("videos")
	if err != nil {
		closeImages()
		f.close()
		return service.PropertyFields{}, service.Uploads{}, noop, err
	}

	cleanup := func() {
		closeImages()
		closeVideos()
		f.close()
	}
	return fields, service.Uploads{Images: images, Videos: videos, BaseURL: httpx.BaseURL(r)}, cleanup, nil
}

// HandleCreate godoc
//
//	@Summary		Create a property
//	@Description	Accepts JSON or multipart/form-data with up to 10 "images" and 5 "videos".
//	@Description	A listing identical to one the caller already has updates that one and answers 200.
//	@Tags			Properties
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			request	body		estatesdk.PropertyRequest	true	"Listing"
//	@Success		201		{object}	estatesdk.PropertyResponse	"Created"
//	@Success		200		{object}	estatesdk.PropertyResponse	"Duplicate updated"
//	@Failure		400		{object}	estatesdk.MessageResponse
//	@Failure		401		{object}	estatesdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/properties [post].
func (h *PropertiesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields, uploads, cleanup, err := readPropertyRequest(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, duplicate, err := h.PropertyService.Create(r.Context(), service.ActorFromContext(r.Context()), fields, uploads)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if duplicate {
		httpx.WriteJSON(w, http.StatusOK, propertyResponse{
			Success:  true,
			Message:  "Duplicate property found. Existing property updated successfully",
			Property: p,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, propertyResponse{Success: true, Message: "Property added successfully", Property: p})
}

// HandleList godoc
//
//	@Summary	List properties
//	@Tags		Properties
//	@Produce	json
//	@Param		city		query		string	false	"City, case-insensitive"
//	@Param		listingType	query		string	false	"Sale, Rent or Lease"
//	@Param		approved	query		bool	false	"Only approved or only pending listings"
//	@Success	200			{object}	estatesdk.PropertyListResponse
//	@Failure	400			{object}	estatesdk.MessageResponse
//	@Router		/api/properties [get].
func (h *PropertiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PropertyFilter{
		City:        q.Get("city"),
		ListingType: q.Get("listingType"),
	}
	if v := q.Get("approved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, invalidField("approved"))
			return
		}
		filter.Approved = &approved
	}

	ps, err := h.PropertyService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, propertyListResponse{
		Success:    true,
		Message:    "Properties fetched successfully",
		Count:      len(ps),
		Properties: ps,
	})
}

// HandleGet godoc
//
//	@Summary		Get a property
//	@Description	Counts a view on every fetch.
//	@Tags			Properties
//	@Produce		json
//	@Param			id	path		string	true	"Property ID"
//	@Success		200	{object}	estatesdk.PropertyResponse
//	@Failure		404	{object}	estatesdk.MessageResponse
//	@Router			/api/properties/{id} [get].
func (h *PropertiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.PropertyService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, propertyResponse{Success: true, Message: "Property details fetched successfully", Property: p})
}

// HandleUpdate godoc
//
//	@Summary		Update a property
//	@Description	Owner or admin only. Uploaded media is appended.
//	@Tags			Properties
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			id		path		string						true	"Property ID"
//	@Param			request	body		estatesdk.PropertyRequest	true	"Fields to change"
//	@Success		200		{object}	estatesdk.PropertyResponse
//	@Failure		400		{object}	estatesdk.MessageResponse
//	@Failure		403		{object}	estatesdk.MessageResponse
//	@Failure		404		{object}	estatesdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/properties/{id} [put].
func (h *PropertiesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, uploads, cleanup, err := readPropertyRequest(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.PropertyService.Update(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id"), fields, uploads)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, propertyResponse{Success: true, Message: "Property updated successfully", Property: p})
}

// HandleDelete godoc
//
//	@Summary	Delete a property
//	@Tags		Properties
//	@Produce	json
//	@Param		id	path		string	true	"Property ID"
//	@Success	200	{object}	estatesdk.MessageResponse
//	@Failure	403	{object}	estatesdk.MessageResponse
//	@Failure	404	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/properties/{id} [delete].
func (h *PropertiesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PropertyService.Delete(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Property deleted successfully")
}

// HandleApprove godoc
//
//	@Summary		Approve a property
//	@Description	Admin only. The listing's owner cannot approve it.
//	@Tags			Properties
//	@Produce		json
//	@Param			id	path		string	true	"Property ID"
//	@Success		200	{object}	estatesdk.PropertyResponse
//	@Failure		403	{object}	estatesdk.MessageResponse
//	@Failure		404	{object}	estatesdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/properties/{id}/approve [post].
func (h *PropertiesHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	p, err := h.PropertyService.Approve(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, propertyResponse{Success: true, Message: "Property approved successfully", Property: p})
}
