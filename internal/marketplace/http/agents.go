package http

import (
	"net/http"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

type AgentsHandler struct {
	AgentService *service.AgentService
}

type agentResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Agent   domain.Agent `json:"agent"`
}

type agentListResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Agents  []domain.Agent `json:"agents"`
}

func readAgentFields(w http.ResponseWriter, r *http.Request) (service.AgentFields, error) {
	f, err := readForm(w, r)
	if err != nil {
		return service.AgentFields{}, err
	}
	defer f.close()

	return service.AgentFields{
		IsPropertyDealer:   f.str("isPropertyDealer"),
		AgentName:          f.str("agentName"),
		FirmName:           f.str("firmName"),
		OperatingCity:      f.str("operatingCity"),
		OperatingAreaChips: f.list("operatingAreaChips"),
		OperatingSince:     f.str("operatingSince"),
		TeamMembers:        f.str("teamMembers"),
		DealsIn:            f.list("dealsIn"),
		DealsInOther:       f.str("dealsInOther"),
		AboutAgent:         f.str("aboutAgent"),
	}, nil
}

// HandleRegister godoc
//
//	@Summary	Register an agent profile
//	@Tags		Agents
//	@Accept		json
//	@Produce	json
//	@Param		request	body		estatesdk.AgentRequest	true	"Agent"
//	@Success	201		{object}	estatesdk.AgentResponse
//	@Failure	400		{object}	estatesdk.MessageResponse
//	@Failure	401		{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/agents [post].
func (h *AgentsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	fields, err := readAgentFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.AgentService.Register(r.Context(), service.ActorFromContext(r.Context()), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, agentResponse{Success: true, Message: "Agent registered successfully", Agent: a})
}

// HandleList godoc
//
//	@Summary	List agents
//	@Tags		Agents
//	@Produce	json
//	@Success	200	{object}	estatesdk.AgentListResponse
//	@Failure	401	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/agents [get].
func (h *AgentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	as, err := h.AgentService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, agentListResponse{Success: true, Message: "Agents fetched successfully", Count: len(as), Agents: as})
}

// HandleGet godoc
//
//	@Summary	Get an agent
//	@Tags		Agents
//	@Produce	json
//	@Param		id	path		string	true	"Agent ID"
//	@Success	200	{object}	estatesdk.AgentResponse
//	@Failure	404	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/agents/{id} [get].
func (h *AgentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.AgentService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, agentResponse{Success: true, Message: "Agent fetched successfully", Agent: a})
}

// HandleUpdate godoc
//
//	@Summary	Update an agent
//	@Tags		Agents
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Agent ID"
//	@Param		request	body		estatesdk.AgentRequest	true	"Fields to change"
//	@Success	200		{object}	estatesdk.AgentResponse
//	@Failure	400		{object}	estatesdk.MessageResponse
//	@Failure	403		{object}	estatesdk.MessageResponse
//	@Failure	404		{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/agents/{id} [put].
func (h *AgentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, err := readAgentFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.AgentService.Update(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id"), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, agentResponse{Success: true, Message: "Agent updated successfully", Agent: a})
}

// HandleDelete godoc
//
//	@Summary	Delete an agent
//	@Tags		Agents
//	@Produce	json
//	@Param		id	path		string	true	"Agent ID"
//	@Success	200	{object}	estatesdk.MessageResponse
//	@Failure	403	{object}	estatesdk.MessageResponse
//	@Failure	404	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/agents/{id} [delete].
func (h *AgentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AgentService.Delete(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Agent deleted successfully")
}
