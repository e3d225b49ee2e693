package http

import (
	"net/http"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

type ConsultantsHandler struct {
	ConsultantService *service.ConsultantService
}

type consultantResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Consultant domain.Consultant `json:"consultant"`
}

type consultantListResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Count       int                 `json:"count"`
	Consultants []domain.Consultant `json:"consultants"`
}

func readConsultantRequest(w http.ResponseWriter, r *http.Request) (service.ConsultantFields, service.ConsultantFiles, func(), error) {
	noop := func() {}
	f, err := readForm(w, r)
	if err != nil {
		return service.ConsultantFields{}, service.ConsultantFiles{}, noop, err
	}

	fields := service.ConsultantFields{
		Name:           f.str("name"),
		Phone:          f.str("phone"),
		Designation:    f.str("designation"),
		MoneyType:      f.str("moneyType"),
		Expertise:      f.str("expertise"),
		Certifications: f.str("certifications"),
		Languages:      f.list("languages"),
		Address:        f.str("address"),
		Location:       f.str("location"),
	}
	var errs [2]error
	fields.Experience, errs[0] = f.int("experience")
	fields.Money, errs[1] = f.float("money")
	if err := firstErr(errs[:]...); err != nil {
		f.close()
		return service.ConsultantFields{}, service.ConsultantFiles{}, noop, err
	}

	image, closeImage, err := f.mediaFile("image")
	if err != nil {
		f.close()
		return service.ConsultantFields{}, service.ConsultantFiles{}, noop, err
	}
	idProof, closeProof, err := f.mediaFile("idProof")
	if err != nil {
		closeImage()
		f.close()
		return service.ConsultantFields{}, service.ConsultantFiles{}, noop, err
	}

	cleanup := func() {
		closeImage()
		closeProof()
		f.close()
	}
	return fields, service.ConsultantFiles{Image: image, IDProof: idProof, BaseURL: httpx.BaseURL(r)}, cleanup, nil
}

// HandleAdd godoc
//
//	@Summary		Add a consultant
//	@Description	multipart/form-data with every profile field plus "image" and "idProof" files.
//	@Tags			Consultants
//	@Accept			mpfd
//	@Produce		json
//	@Success		201	{object}	estatesdk.ConsultantResponse
//	@Failure		400	{object}	estatesdk.MessageResponse	"Missing fields or duplicate name and phone"
//	@Failure		401	{object}	estatesdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/consultants [post].
func (h *ConsultantsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	fields, files, cleanup, err := readConsultantRequest(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.ConsultantService.Add(r.Context(), service.ActorFromContext(r.Context()), fields, files)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, consultantResponse{Success: true, Message: "Consultant added successfully", Consultant: c})
}

// HandleList godoc
//
//	@Summary	List consultants
//	@Tags		Consultants
//	@Produce	json
//	@Param		location	query		string	false	"Substring of the location, case-insensitive"
//	@Success	200			{object}	estatesdk.ConsultantListResponse
//	@Failure	401			{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/consultants [get].
func (h *ConsultantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.ConsultantService.List(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consultantListResponse{
		Success:     true,
		Message:     "Consultants fetched successfully",
		Count:       len(cs),
		Consultants: cs,
	})
}

// HandleGet godoc
//
//	@Summary	Get a consultant
//	@Tags		Consultants
//	@Produce	json
//	@Param		id	path		string	true	"Consultant ID"
//	@Success	200	{object}	estatesdk.ConsultantResponse
//	@Failure	404	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/consultants/{id} [get].
func (h *ConsultantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ConsultantService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consultantResponse{Success: true, Message: "Consultant fetched successfully", Consultant: c})
}

// HandleUpdate godoc
//
//	@Summary	Update a consultant
//	@Tags		Consultants
//	@Accept		json,mpfd
//	@Produce	json
//	@Param		id	path		string	true	"Consultant ID"
//	@Success	200	{object}	estatesdk.ConsultantResponse
//	@Failure	400	{object}	estatesdk.MessageResponse
//	@Failure	403	{object}	estatesdk.MessageResponse
//	@Failure	404	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/consultants/{id} [put].
func (h *ConsultantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, files, cleanup, err := readConsultantRequest(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.ConsultantService.Update(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id"), fields, files)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consultantResponse{Success: true, Message: "Consultant updated successfully", Consultant: c})
}

// HandleDelete godoc
//
//	@Summary	Delete a consultant
//	@Tags		Consultants
//	@Produce	json
//	@Param		id	path		string	true	"Consultant ID"
//	@Success	200	{object}	estatesdk.MessageResponse
//	@Failure	403	{object}	estatesdk.MessageResponse
//	@Failure	404	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/consultants/{id} [delete].
func (h *ConsultantsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ConsultantService.Delete(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Consultant deleted successfully")
}
