package view

import (
	"context"
	"strconv"
	"time"

	"cpms/internal/models"
)

type WizardStep int

const (
	StepBasicInfo WizardStep = iota
	StepReview
)

const totalSteps = 2

var (
	ProjectTypes      = []string{"Building", "Road", "Bridge", "Industrial"}
	ProjectCategories = []string{"Residential", "Commercial", "Infrastructure"}
	FormStatuses      = []string{"Planning", "Active", "On Hold"}
)

// formStatusMap translates the wizard's status choices onto the API enum.
var formStatusMap = map[string]models.ProjectStatus{
	"Planning": models.StatusPlanned,
	"Active":   models.StatusActive,
	"On Hold":  models.StatusPendingApproval,
}

// ProjectForm holds the wizard's raw input. Budget stays a string until
// submit so the form can echo back whatever was typed.
type ProjectForm struct {
	ProjectName      string
	ProjectCode      string
	ProjectType      string
	ProjectCategory  string
	ProjectStatus    string
	ClientOwner      string
	Description      string
	PlannedStartDate string
	PlannedEndDate   string
	EstimatedBudget  string
	Currency         string
}

func DefaultProjectForm() ProjectForm {
	return ProjectForm{
		ProjectType:     "Building",
		ProjectCategory: "Residential",
		ProjectStatus:   "Planning",
		Currency:        "USD",
	}
}

// FormErrors maps field names to their validation messages.
type FormErrors map[string]string

func (e FormErrors) Error() string { return "Please correct the form errors." }

func (f ProjectForm) validate() FormErrors {
	errs := FormErrors{}
	if f.ProjectName == "" {
		errs["projectName"] = "Project Name is required"
	}
	if f.ProjectCode == "" {
		errs["projectCode"] = "Project Code is required"
	}
	if !contains(ProjectTypes, f.ProjectType) {
		errs["projectType"] = "Invalid project type"
	}
	if !contains(ProjectCategories, f.ProjectCategory) {
		errs["projectCategory"] = "Invalid project category"
	}
	if !contains(FormStatuses, f.ProjectStatus) {
		errs["projectStatus"] = "Invalid project status"
	}
	if f.ClientOwner == "" {
		errs["clientOwner"] = "Client / Owner is required"
	}
	if f.PlannedStartDate == "" {
		errs["plannedStartDate"] = "Planned Start Date is required"
	} else if !validDate(f.PlannedStartDate) {
		errs["plannedStartDate"] = "Planned Start Date must be a valid date (YYYY-MM-DD)"
	}
	if f.PlannedEndDate == "" {
		errs["plannedEndDate"] = "Planned End Date is required"
	} else if !validDate(f.PlannedEndDate) {
		errs["plannedEndDate"] = "Planned End Date must be a valid date (YYYY-MM-DD)"
	}
	if f.EstimatedBudget != "" {
		if _, err := strconv.ParseFloat(f.EstimatedBudget, 64); err != nil {
			errs["estimatedBudget"] = "Estimated Budget must be a number"
		}
	}
	if f.Currency == "" {
		errs["currency"] = "Currency is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// ProjectCreator is the slice of the client proxy the wizard submits through;
// client.Resource[models.Project] satisfies it.
type ProjectCreator interface {
	Create(ctx context.Context, payload any) (models.Project, error)
}

// ProjectWizard is the multi-step create-project flow: basic info, then a
// review step, then submit.
type ProjectWizard struct {
	Form ProjectForm
	step WizardStep
	errs FormErrors
}

func NewProjectWizard() *ProjectWizard {
	return &ProjectWizard{Form: DefaultProjectForm()}
}

func (w *ProjectWizard) Step() WizardStep { return w.step }

func (w *ProjectWizard) IsFirstStep() bool { return w.step == 0 }

func (w *ProjectWizard) IsLastStep() bool { return w.step == totalSteps-1 }

// Errors returns the field errors from the latest Next or Submit.
func (w *ProjectWizard) Errors() FormErrors { return w.errs }

// Next validates the form and advances to the next step; it refuses to move
// forward while any field is invalid.
func (w *ProjectWizard) Next() error {
	w.errs = w.Form.validate()
	if w.errs != nil {
		return w.errs
	}
	if w.step < totalSteps-1 {
		w.step++
	}
	return nil
}

func (w *ProjectWizard) Back() {
	if w.step > 0 {
		w.step--
	}
}

// Submit re-validates everything and creates the project through the proxy.
func (w *ProjectWizard) Submit(ctx context.Context, projects ProjectCreator) (models.Project, error) {
	w.errs = w.Form.validate()
	if w.errs != nil {
		return models.Project{}, w.errs
	}

	payload := map[string]any{
		"projectName": w.Form.ProjectName,
		"projectCode": w.Form.ProjectCode,
		"description": w.Form.Description,
		"client":      w.Form.ClientOwner,
		"startDate":   w.Form.PlannedStartDate,
		"dueDate":     w.Form.PlannedEndDate,
		"status":      string(formStatusMap[w.Form.ProjectStatus]),
	}
	if w.Form.EstimatedBudget != "" {
		budget, _ := strconv.ParseFloat(w.Form.EstimatedBudget, 64)
		payload["budget"] = budget
	}

	return projects.Create(ctx, payload)
}
