package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/idx"
)

// AgentFields is the set of agent profile fields a client may write.
type AgentFields struct {
	IsPropertyDealer   *string
	AgentName          *string
	FirmName           *string
	OperatingCity      *string
	OperatingAreaChips *[]string
	OperatingSince     *string
	TeamMembers        *string
	DealsIn            *[]string
	DealsInOther       *string
	AboutAgent         *string
}

func (f AgentFields) apply(a *domain.Agent) {
	if f.IsPropertyDealer != nil {
		a.IsPropertyDealer = DealerFlag(*f.IsPropertyDealer)
	}
	setTrimmed(&a.AgentName, f.AgentName)
	setTrimmed(&a.FirmName, f.FirmName)
	setTrimmed(&a.OperatingCity, f.OperatingCity)
	set(&a.OperatingAreaChips, f.OperatingAreaChips)
	setTrimmed(&a.OperatingSince, f.OperatingSince)
	setTrimmed(&a.TeamMembers, f.TeamMembers)
	set(&a.DealsIn, f.DealsIn)
	setTrimmed(&a.DealsInOther, f.DealsInOther)
	setTrimmed(&a.AboutAgent, f.AboutAgent)
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// DealerFlag maps the client's dealer answer onto "yes" or "no".
func DealerFlag(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1":
		return "yes"
	default:
		return "no"
	}
}

type AgentService struct {
	Store  store.Store
	Policy policy.Policy
	Now    func() time.Time
}

func (s *AgentService) Register(ctx context.Context, actor policy.Actor, f AgentFields) (domain.Agent, error) {
	a := domain.Agent{
		IsPropertyDealer:   "no",
		OperatingAreaChips: []string{},
		DealsIn:            []string{},
		Owner:              actor.ID,
	}
	f.apply(&a)
	if a.AgentName == "" || a.OperatingCity == "" || len(a.DealsIn) == 0 {
		return domain.Agent{}, ErrAgentFields
	}

	now := now(s.Now)
	a.ID = idx.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.Store.Agents().CreateAgent(ctx, a); err != nil {
		return domain.Agent{}, apperr.Internal(err)
	}
	return a, nil
}

func (s *AgentService) List(ctx context.Context) ([]domain.Agent, error) {
	as, err := s.Store.Agents().ListAgents(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return as, nil
}

func (s *AgentService) Get(ctx context.Context, id string) (domain.Agent, error) {
	if id == "" {
		return domain.Agent{}, ErrInvalidID
	}
	a, err := s.Store.Agents().GetAgent(ctx, id)
	if err != nil {
		return domain.Agent{}, agentErr(err)
	}
	return a, nil
}

// Update writes the provided fields. Required fields may not be blanked.
func (s *AgentService) Update(ctx context.Context, actor policy.Actor, id string, f AgentFields) (domain.Agent, error) {
	a, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.Agent{}, err
	}
	f.apply(&a)
	if a.AgentName == "" || a.OperatingCity == "" || len(a.DealsIn) == 0 {
		return domain.Agent{}, ErrAgentFields
	}
	a.UpdatedAt = now(s.Now)
	if err := s.Store.Agents().UpdateAgent(ctx, a); err != nil {
		return domain.Agent{}, agentErr(err)
	}
	return a, nil
}

func (s *AgentService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Store.Agents().DeleteAgent(ctx, id); err != nil {
		return agentErr(err)
	}
	return nil
}

func (s *AgentService) owned(ctx context.Context, actor policy.Actor, id string) (domain.Agent, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return domain.Agent{}, err
	}
	if !s.Policy.CanMutate(actor, a.Owner) {
		return domain.Agent{}, ErrNotAuthorized
	}
	return a, nil
}

func agentErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAgentNotFound
	}
	return apperr.Internal(err)
}
