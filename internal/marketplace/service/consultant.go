package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

type ConsultantFields struct {
	Name           *string
	Phone          *string
	Designation    *string
	Experience     *int
	Money          *float64
	MoneyType      *string
	Expertise      *string
	Certifications *string
	Languages      *[]string
	Address        *string
	Location       *string
}

func (f ConsultantFields) apply(c *domain.Consultant) {
	setTrimmed(&c.Name, f.Name)
	if f.Phone != nil {
		c.Phone = domain.NormalizePhone(*f.Phone)
	}
	setTrimmed(&c.Designation, f.Designation)
	set(&c.Experience, f.Experience)
	set(&c.Money, f.Money)
	setTrimmed(&c.MoneyType, f.MoneyType)
	setTrimmed(&c.Expertise, f.Expertise)
	setTrimmed(&c.Certifications, f.Certifications)
	set(&c.Languages, f.Languages)
	setTrimmed(&c.Address, f.Address)
	setTrimmed(&c.Location, f.Location)
}

// ConsultantFiles are the profile photo and identity document. Either may
// be nil on update.
type ConsultantFiles struct {
	Image   *media.File
	IDProof *media.File
	BaseURL string
}

type ConsultantService struct {
	Store  store.Store
	Media  media.Storage
	Policy policy.Policy
	Now    func() time.Time
}

// Add creates a consultant profile. Every field and both files are
// required.
func (s *ConsultantService) Add(ctx context.Context, actor policy.Actor, f ConsultantFields, files ConsultantFiles) (domain.Consultant, error) {
	if f.Name == nil || f.Phone == nil || f.Designation == nil || f.Experience == nil || f.Money == nil ||
		f.Expertise == nil || f.Certifications == nil || f.Languages == nil || f.Address == nil ||
		f.Location == nil || files.Image == nil || files.IDProof == nil {
		return domain.Consultant{}, ErrConsultantFields
	}

	c := domain.Consultant{MoneyType: "project", Owner: actor.ID}
	f.apply(&c)
	if err := validateConsultant(c); err != nil {
		return domain.Consultant{}, err
	}
	if err := s.storeFiles(ctx, &c, files); err != nil {
		return domain.Consultant{}, err
	}

	now := now(s.Now)
	c.ID = idx.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	err := s.Store.Consultants().CreateConsultant(ctx, c)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Consultant{}, ErrConsultantExists
	}
	if err != nil {
		return domain.Consultant{}, apperr.Internal(err)
	}
	slogx.FromContext(ctx).Info("consultant added", "consultant_id", c.ID)
	return c, nil
}

// List returns consultants, optionally those whose location contains
// location.
func (s *ConsultantService) List(ctx context.Context, location string) ([]domain.Consultant, error) {
	cs, err := s.Store.Consultants().ListConsultants(ctx, strings.TrimSpace(location))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return cs, nil
}

func (s *ConsultantService) Get(ctx context.Context, id string) (domain.Consultant, error) {
	if id == "" {
		return domain.Consultant{}, ErrInvalidID
	}
	c, err := s.Store.Consultants().GetConsultant(ctx, id)
	if err != nil {
		return domain.Consultant{}, consultantErr(err)
	}
	return c, nil
}

func (s *ConsultantService) Update(ctx context.Context, actor policy.Actor, id string, f ConsultantFields, files ConsultantFiles) (domain.Consultant, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.Consultant{}, err
	}
	f.apply(&c)
	if err := validateConsultant(c); err != nil {
		return domain.Consultant{}, err
	}
	if err := s.storeFiles(ctx, &c, files); err != nil {
		return domain.Consultant{}, err
	}

	c.UpdatedAt = now(s.Now)
	err = s.Store.Consultants().UpdateConsultant(ctx, c)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Consultant{}, ErrConsultantExists
	}
	if err != nil {
		return domain.Consultant{}, consultantErr(err)
	}
	return c, nil
}

func (s *ConsultantService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Store.Consultants().DeleteConsultant(ctx, id); err != nil {
		return consultantErr(err)
	}
	return nil
}

func (s *ConsultantService) owned(ctx context.Context, actor policy.Actor, id string) (domain.Consultant, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return domain.Consultant{}, err
	}
	if !s.Policy.CanMutate(actor, c.Owner) {
		return domain.Consultant{}, apperr.Forbidden("You are not authorized to perform this action")
	}
	return c, nil
}

func (s *ConsultantService) storeFiles(ctx context.Context, c *domain.Consultant, files ConsultantFiles) error {
	if files.Image != nil {
		u, err := storeFile(ctx, s.Media, *files.Image, files.BaseURL)
		if err != nil {
			return err
		}
		c.Image = u
	}
	if files.IDProof != nil {
		u, err := storeFile(ctx, s.Media, *files.IDProof, files.BaseURL)
		if err != nil {
			return err
		}
		c.IDProof = u
	}
	return nil
}

func validateConsultant(c domain.Consultant) error {
	switch {
	case c.Name == "" || c.Phone == "" || c.Designation == "" || c.Expertise == "" ||
		c.Certifications == "" || len(c.Languages) == 0 || c.Address == "" || c.Location == "":
		return ErrConsultantFields
	case !domain.ValidPhone(c.Phone):
		return ErrInvalidPhone
	case !domain.ValidMoneyType(c.MoneyType):
		return apperr.Validation("Invalid money type")
	case c.Experience < 0 || c.Money < 0:
		return apperr.Validation("Experience and money cannot be negative")
	}
	return nil
}

func consultantErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrConsultantNotFound
	}
	return apperr.Internal(err)
}
