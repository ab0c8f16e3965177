package form

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/customform/core"
)

type (
	// Repository persists form instances.
	Repository interface {
		CreateForm(frm Form) (Form, error)
		QueryAllForms() ([]Form, error)
		GetFormByID(id int) (Form, error)
		UpdateForm(frm Form, sendEmail *bool) (Form, error)
		DeleteFormsByID(ids ...int) error
	}

	// CatalogRepository reads the admin-defined custom field catalog.
	// Definitions are owned elsewhere; this side is read-only.
	CatalogRepository interface {
		QueryAllCategories() ([]Category, error)
		GetCategoryByID(id int) (Category, error)
		// QueryFieldsByCategoryID returns definitions in stable catalog
		// (display) order; an empty result is valid.
		QueryFieldsByCategoryID(categoryID int) ([]FieldDefinition, error)
	}

	Service struct {
		repo        Repository
		catalogRepo CatalogRepository
		dispatcher  *Dispatcher
	}

	// SubmissionResult is what one handled submission yields: the
	// instance's feedback for the submitter plus the structured
	// delivery outcome the outer flow is free to ignore.
	SubmissionResult struct {
		ID             string          `json:"id"`
		Feedback       string          `json:"feedback"`
		FeedbackFormat int             `json:"feedback_format"`
		Report         Report          `json:"report"`
		Outcome        DeliveryOutcome `json:"outcome"`
	}
)

func NewService(repo Repository, catalogRepo CatalogRepository, dispatcher *Dispatcher) *Service {
	return &Service{
		repo:        repo,
		catalogRepo: catalogRepo,
		dispatcher:  dispatcher,
	}
}

// ResolveCatalog returns the ordered field definitions applicable to the
// given instance's category. An unknown category is a hard failure
// (ErrCategoryNotFound), distinct from a configured category with no
// fields, which resolves to an empty catalog.
func (svc *Service) ResolveCatalog(frm Form) ([]FieldDefinition, error) {
	if _, err := svc.catalogRepo.GetCategoryByID(frm.CategoryID); err != nil {
		return nil, err
	}
	return svc.catalogRepo.QueryFieldsByCategoryID(frm.CategoryID)
}

// Submit handles one raw form post end to end:
// resolve catalog -> normalize -> render -> dispatch.
//
// Only an unresolvable instance or category propagates as an error;
// delivery failures are absorbed by the dispatcher so the submitter
// always reaches the feedback state.
func (svc *Service) Submit(ctx context.Context, formID int, raw RawSubmission) (SubmissionResult, error) {
	frm, err := svc.repo.GetFormByID(formID)
	if err != nil {
		return SubmissionResult{}, err
	}

	catalog, err := svc.ResolveCatalog(frm)
	if err != nil {
		return SubmissionResult{}, err
	}

	normalized := Normalize(raw, catalog)
	report := Render(normalized, catalog)

	outcome := svc.dispatcher.Dispatch(ctx, Target{
		URL:       frm.URL,
		SendEmail: frm.SendEmail,
		EmailTo:   frm.EmailTo,
		Course:    frm.Course,
		FormName:  frm.Name,
	}, normalized, report)

	return SubmissionResult{
		ID:             uuid.New().String(),
		Feedback:       frm.Feedback,
		FeedbackFormat: frm.FeedbackFormat,
		Report:         report,
		Outcome:        outcome,
	}, nil
}

// checkCategory maps an unknown category to a field-level validation error.
func (svc *Service) checkCategory(id int) error {
	if _, err := svc.catalogRepo.GetCategoryByID(id); err != nil {
		if err == ErrCategoryNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "category_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nf NewForm) (Form, error) {
	if err := svc.checkCategory(nf.CategoryID); err != nil {
		return Form{}, err
	}
	now := time.Now().UTC()
	frm := Form{
		Course:         core.CleanString(nf.Course),
		Name:           core.CleanString(nf.Name),
		Intro:          nf.Intro,
		Feedback:       nf.Feedback,
		FeedbackFormat: nf.FeedbackFormat,
		URL:            core.CleanString(nf.URL),
		CategoryID:     nf.CategoryID,
		SendEmail:      nf.SendEmail,
		EmailTo:        core.CleanString(nf.EmailTo, true /* lower */),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateForm(frm)
}

func (svc *Service) QueryAll() ([]Form, error) {
	return svc.repo.QueryAllForms()
}

func (svc *Service) GetByID(id int) (Form, error) {
	return svc.repo.GetFormByID(id)
}

func (svc *Service) Update(id int, uf UpdateForm) (Form, error) {
	if uf.CategoryID != 0 {
		if err := svc.checkCategory(uf.CategoryID); err != nil {
			return Form{}, err
		}
	}
	frm := Form{
		ID:             id,
		Course:         core.CleanString(uf.Course),
		Name:           core.CleanString(uf.Name),
		Intro:          uf.Intro,
		Feedback:       uf.Feedback,
		FeedbackFormat: uf.FeedbackFormat,
		URL:            core.CleanString(uf.URL),
		CategoryID:     uf.CategoryID,
		EmailTo:        core.CleanString(uf.EmailTo, true /* lower */),
		UpdatedAt:      time.Now().UTC(),
	}
	return svc.repo.UpdateForm(frm, uf.SendEmail)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteFormsByID(ids...)
}

func (svc *Service) QueryCategories() ([]Category, error) {
	return svc.catalogRepo.QueryAllCategories()
}
