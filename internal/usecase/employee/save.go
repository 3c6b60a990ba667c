package employee

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

const (
	CedulaMax   = 10
	NameMax     = 50
	SalaryMax   = 8
	MinAgeYears = 18
	DateFormat  = "2006-01-02"
)

type Repository interface {
	CedulaExists(
		ctx context.Context,
		cedula string,
		excludeID uint,
	) (bool, error)

	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
}

type Input struct {
	Cedula    string
	Name      string
	Surname   string
	HireDate  string
	BirthDate string
	Phone     string
	Role      string
	Salary    string
	Status    string
}

// ======================================================
// USE CASE — create / update employee
// ======================================================

type SaveEmployee struct {
	repo  Repository
	audit *audit.Dispatcher
	tz    string
}

func NewSaveEmployee(repo Repository, audit *audit.Dispatcher, tz string) *SaveEmployee {
	return &SaveEmployee{repo: repo, audit: audit, tz: tz}
}

func (uc *SaveEmployee) Create(
	ctx context.Context,
	actorID uint,
	in Input,
) (*models.Employee, error) {

	fields, err := uc.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}

	e := &models.Employee{
		Cedula:    fields.cedula,
		Name:      fields.name,
		Surname:   fields.surname,
		HireDate:  fields.hireDate,
		BirthDate: fields.birthDate,
		Phone:     fields.phone,
		Role:      fields.role,
		Salary:    fields.salary,
		Status:    fields.status,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "employee_created",
		Entity:   "employee",
		EntityID: &e.ID,
	})

	return e, nil
}

func (uc *SaveEmployee) Update(
	ctx context.Context,
	actorID uint,
	employeeID uint,
	in Input,
) (*models.Employee, error) {

	e, err := uc.repo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, httperr.ErrBusiness("employee_not_found")
	}

	fields, err := uc.validate(ctx, in, employeeID)
	if err != nil {
		return nil, err
	}

	e.Cedula = fields.cedula
	e.Name = fields.name
	e.Surname = fields.surname
	e.HireDate = fields.hireDate
	e.BirthDate = fields.birthDate
	e.Phone = fields.phone
	e.Role = fields.role
	e.Salary = fields.salary
	e.Status = fields.status
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "employee_updated",
		Entity:   "employee",
		EntityID: &e.ID,
	})

	return e, nil
}

// ToggleStatus flips Activo/Inactivo; employees are never deleted.
func (uc *SaveEmployee) ToggleStatus(
	ctx context.Context,
	actorID uint,
	employeeID uint,
) (*models.Employee, error) {

	e, err := uc.repo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, httperr.ErrBusiness("employee_not_found")
	}

	if e.Status == models.EmployeeActive {
		e.Status = models.EmployeeInactive
	} else {
		e.Status = models.EmployeeActive
	}

	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "employee_status_toggled",
		Entity:   "employee",
		EntityID: &e.ID,
		Metadata: map[string]string{"status": e.Status},
	})

	return e, nil
}

type parsedFields struct {
	cedula, name, surname string
	phone, role, salary   string
	status                string
	hireDate, birthDate   time.Time
}

func (uc *SaveEmployee) validate(ctx context.Context, in Input, excludeID uint) (parsedFields, error) {
	errs := validation.New()
	var out parsedFields

	out.cedula = strings.TrimSpace(in.Cedula)
	switch {
	case out.cedula == "":
		errs.Add("cedula", validation.CodeRequired)
	case !validation.IsDigits(out.cedula) || len(out.cedula) > CedulaMax:
		errs.Add("cedula", validation.CodeInvalidFormat)
	}

	out.name = strings.TrimSpace(in.Name)
	if out.name == "" {
		errs.Add("name", validation.CodeRequired)
	} else if utf8.RuneCountInString(out.name) > NameMax {
		errs.Add("name", validation.CodeOutOfRange)
	}

	out.surname = strings.TrimSpace(in.Surname)
	if out.surname == "" {
		errs.Add("surname", validation.CodeRequired)
	} else if utf8.RuneCountInString(out.surname) > NameMax {
		errs.Add("surname", validation.CodeOutOfRange)
	}

	loc := timezone.Location(uc.tz)
	if in.HireDate == "" {
		errs.Add("hire_date", validation.CodeRequired)
	} else if parsed, err := time.ParseInLocation(DateFormat, in.HireDate, loc); err != nil {
		errs.Add("hire_date", validation.CodeInvalidFormat)
	} else {
		out.hireDate = parsed
	}

	if in.BirthDate == "" {
		errs.Add("birth_date", validation.CodeRequired)
	} else if parsed, err := time.ParseInLocation(DateFormat, in.BirthDate, loc); err != nil {
		errs.Add("birth_date", validation.CodeInvalidFormat)
	} else if !isAdult(parsed, timezone.Today(uc.tz)) {
		errs.Add("birth_date", validation.CodeInvalidDate)
	} else {
		out.birthDate = parsed
	}

	out.phone = strings.TrimSpace(in.Phone)
	if out.phone == "" {
		errs.Add("phone", validation.CodeRequired)
	} else if !validation.IsCellPhone(out.phone) {
		errs.Add("phone", validation.CodeInvalidFormat)
	}

	out.role = in.Role
	if out.role != models.RoleTechnician && out.role != models.RoleSecretary {
		errs.Add("role", validation.CodeInvalidFormat)
	}

	out.salary = validation.StripLeadingZeros(strings.TrimSpace(in.Salary))
	switch {
	case in.Salary == "":
		errs.Add("salary", validation.CodeRequired)
	case !validation.IsDigits(out.salary):
		errs.Add("salary", validation.CodeInvalidFormat)
	case len(out.salary) > SalaryMax:
		errs.Add("salary", validation.CodeOutOfRange)
	}

	out.status = in.Status
	if out.status == "" {
		out.status = models.EmployeeActive
	} else if out.status != models.EmployeeActive && out.status != models.EmployeeInactive {
		errs.Add("status", validation.CodeInvalidFormat)
	}

	if !errs.Has("cedula") {
		taken, err := uc.repo.CedulaExists(ctx, out.cedula, excludeID)
		if err != nil {
			return out, err
		}
		if taken {
			errs.Add("cedula", validation.CodeDuplicateKey)
		}
	}

	if !errs.Empty() {
		return out, httperr.ErrValidation(errs)
	}
	return out, nil
}

// isAdult reports whether someone born on birth is at least 18 on today.
func isAdult(birth, today time.Time) bool {
	cutoff := birth.AddDate(MinAgeYears, 0, 0)
	return !cutoff.After(today)
}
