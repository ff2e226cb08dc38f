package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/velora-hq/careers/internal/config"
	"github.com/velora-hq/careers/internal/dtos"
	"github.com/velora-hq/careers/internal/mailer"
	"github.com/velora-hq/careers/internal/store"
	"github.com/velora-hq/careers/pkg/logging"
)

// AdminHandler serves the console and its mutations. Everything mutating
// sits behind RequireAdmin; Console itself degrades to the login form.
type AdminHandler struct {
	cfg          *config.Config
	jobs         *store.JobStore
	applications *store.ApplicationStore
	mail         *mailer.Mailer
	log          *logging.Logger
}

func NewAdminHandler(cfg *config.Config, jobs *store.JobStore, applications *store.ApplicationStore, mail *mailer.Mailer, log *logging.Logger) *AdminHandler {
	return &AdminHandler{cfg: cfg, jobs: jobs, applications: applications, mail: mail, log: log}
}

// Console renders the admin page, or the login form when unauthenticated.
func (h *AdminHandler) Console(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		c.HTML(http.StatusOK, "login.html", nil)
		return
	}
	h.renderConsole(c, "")
}

func (h *AdminHandler) renderConsole(c *gin.Context, errMsg string) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Jobs":         h.jobs.List(),
		"Applications": h.applications.List(),
		"Error":        errMsg,
	})
}

// Login compares the submitted credentials against the configured secrets.
// With no credentials configured, login can never succeed.
func (h *AdminHandler) Login(c *gin.Context) {
	var form dtos.LoginForm
	if err := c.ShouldBind(&form); err != nil ||
		h.cfg.AdminUsername == "" ||
		form.Username != h.cfg.AdminUsername ||
		form.Password != h.cfg.AdminPassword {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "invalid credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, form.Username)
	if err := sess.Save(); err != nil {
		h.log.Error("could not save session", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		h.log.Error("could not clear session", "err", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AdminHandler) CreateJob(c *gin.Context) {
	var form dtos.JobForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderConsole(c, formErrorMessage(err))
		return
	}
	job := h.jobs.Create(form.Title, form.Location, form.Description, form.Openings, form.Experience)
	h.log.Info("job created", "id", job.ID, "title", job.Title)
	c.Redirect(http.StatusFound, "/admin")
}

// DeleteJob cascades: applications for the job (and their resume files)
// go first, then the posting itself.
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if err := h.applications.DeleteForJob(id); err != nil {
		h.log.Error("cascade delete failed", "job", id, "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.jobs.Delete(id); err != nil {
		h.log.Error("job delete failed", "job", id, "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AdminHandler) DeleteApplication(c *gin.Context) {
	id := c.Param("id")
	if err := h.applications.Delete(id); err != nil {
		h.log.Error("application delete failed", "application", id, "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// RejectApplication notifies the applicant and removes the record. The
// notification is fire-and-forget; the record is deleted regardless of
// how the send turns out.
func (h *AdminHandler) RejectApplication(c *gin.Context) {
	id := c.Param("id")
	app, ok := h.applications.Get(id)
	if !ok {
		c.String(http.StatusNotFound, "application not found")
		return
	}

	// The job may already be gone; the rejection then goes out with empty
	// job fields.
	job, _ := h.jobs.Get(strconv.FormatInt(app.JobID, 10))
	h.mail.SendRejection(app, job)

	if err := h.applications.Delete(id); err != nil {
		h.log.Error("application delete failed", "application", id, "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}
