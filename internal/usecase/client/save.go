package client

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

const (
	NameMax    = 20
	SurnameMax = 30
)

type Repository interface {
	// DuplicateTripleExists matches (name, surname, phone) case-insensitively,
	// excluding the given record id (0 on create).
	DuplicateTripleExists(
		ctx context.Context,
		name, surname, phone string,
		excludeID uint,
	) (bool, error)

	GetByID(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
}

type Input struct {
	Name    string
	Surname string
	Phone   string
}

// ======================================================
// USE CASE — create / update client
// ======================================================

type SaveClient struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewSaveClient(repo Repository, audit *audit.Dispatcher) *SaveClient {
	return &SaveClient{repo: repo, audit: audit}
}

func (uc *SaveClient) Create(
	ctx context.Context,
	actorID uint,
	in Input,
) (*models.Client, error) {

	in = normalize(in)
	if err := uc.validate(ctx, in, 0); err != nil {
		return nil, err
	}

	c := &models.Client{
		Name:    in.Name,
		Surname: in.Surname,
		Phone:   in.Phone,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &c.ID,
	})

	return c, nil
}

func (uc *SaveClient) Update(
	ctx context.Context,
	actorID uint,
	clientID uint,
	in Input,
) (*models.Client, error) {

	c, err := uc.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	in = normalize(in)
	if err := uc.validate(ctx, in, clientID); err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Surname = in.Surname
	c.Phone = in.Phone
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &c.ID,
	})

	return c, nil
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

func (uc *SaveClient) validate(ctx context.Context, in Input, excludeID uint) error {
	errs := validation.New()

	checkName := func(field, value string, max int) {
		switch {
		case value == "":
			errs.Add(field, validation.CodeRequired)
		case utf8.RuneCountInString(value) > max:
			errs.Add(field, validation.CodeOutOfRange)
		case !validation.IsPersonalName(value):
			errs.Add(field, validation.CodeInvalidFormat)
		}
	}
	checkName("name", in.Name, NameMax)
	checkName("surname", in.Surname, SurnameMax)

	if in.Phone == "" {
		errs.Add("phone", validation.CodeRequired)
	} else if !validation.IsPhone(in.Phone) {
		errs.Add("phone", validation.CodeInvalidFormat)
	}

	// duplicate check only against structurally valid input; the error
	// belongs to the record as a whole, not to any one field
	if errs.Empty() {
		dup, err := uc.repo.DuplicateTripleExists(ctx, in.Name, in.Surname, in.Phone, excludeID)
		if err != nil {
			return err
		}
		if dup {
			errs.Add(validation.FormField, validation.CodeDuplicateKey)
		}
	}

	if !errs.Empty() {
		return httperr.ErrValidation(errs)
	}
	return nil
}
