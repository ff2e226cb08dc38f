package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/velora-hq/careers/internal/dtos"
	"github.com/velora-hq/careers/internal/mailer"
	"github.com/velora-hq/careers/internal/models"
	"github.com/velora-hq/careers/internal/store"
	"github.com/velora-hq/careers/internal/upload"
	"github.com/velora-hq/careers/pkg/logging"
)

// PublicHandler serves the informational pages, the job list, and the
// application flow.
type PublicHandler struct {
	jobs         *store.JobStore
	applications *store.ApplicationStore
	resumes      *upload.Saver
	mail         *mailer.Mailer
	log          *logging.Logger
}

func NewPublicHandler(jobs *store.JobStore, applications *store.ApplicationStore, resumes *upload.Saver, mail *mailer.Mailer, log *logging.Logger) *PublicHandler {
	return &PublicHandler{jobs: jobs, applications: applications, resumes: resumes, mail: mail, log: log}
}

func (h *PublicHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

func (h *PublicHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", nil)
}

func (h *PublicHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", nil)
}

func (h *PublicHandler) Jobs(c *gin.Context) {
	c.HTML(http.StatusOK, "jobs.html", gin.H{"Jobs": h.jobs.List()})
}

// ApplyForm renders the job detail + application form, or 404 for an
// unknown job id.
func (h *PublicHandler) ApplyForm(c *gin.Context) {
	job, ok := h.jobs.Get(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "job not found")
		return
	}
	h.renderApply(c, job, dtos.ApplicationForm{}, "", false)
}

// Apply handles the multipart submission. The resume is saved before the
// field validation runs, mirroring the upload-first pipeline, so every
// failure after that point must discard the stored file before re-rendering
// the form with the applicant's input preserved.
func (h *PublicHandler) Apply(c *gin.Context) {
	job, ok := h.jobs.Get(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "job not found")
		return
	}

	var form dtos.ApplicationForm
	fh, err := c.FormFile("resume")
	if err != nil {
		_ = c.ShouldBind(&form)
		h.renderApply(c, job, form, "resume is required", false)
		return
	}

	stored, err := h.resumes.Save(fh)
	if err != nil {
		_ = c.ShouldBind(&form)
		h.renderApply(c, job, form, uploadErrorMessage(err), false)
		return
	}

	if err := c.ShouldBind(&form); err != nil {
		h.resumes.Discard(stored)
		h.renderApply(c, job, form, formErrorMessage(err), false)
		return
	}

	if err := h.resumes.CheckMinSize(stored); err != nil {
		// CheckMinSize already deleted the undersized file.
		h.renderApply(c, job, form, uploadErrorMessage(err), false)
		return
	}

	app := h.applications.Create(job, form, "/uploads/"+stored)
	h.log.Info("application received", "job", job.Title, "applicant", app.Email)
	h.mail.SendConfirmation(app, job)

	h.renderApply(c, job, dtos.ApplicationForm{}, "", true)
}

func (h *PublicHandler) renderApply(c *gin.Context, job models.Job, form dtos.ApplicationForm, errMsg string, success bool) {
	c.HTML(http.StatusOK, "apply.html", gin.H{
		"Job":     job,
		"Form":    form,
		"Error":   errMsg,
		"Success": success,
	})
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrTooSmall), errors.Is(err, upload.ErrBadType):
		return err.Error()
	default:
		return "could not save your resume, please try again"
	}
}

// formErrorMessage turns the first binding failure into something a person
// can act on.
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "email":
			return "please enter a valid email address"
		case "phone":
			return "please enter a valid phone number"
		}
		return field + " is invalid"
	}
	return "please check the form and try again"
}
