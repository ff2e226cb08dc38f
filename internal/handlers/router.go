package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/velora-hq/careers/internal/config"
	"github.com/velora-hq/careers/internal/mailer"
	"github.com/velora-hq/careers/internal/store"
	"github.com/velora-hq/careers/internal/upload"
	"github.com/velora-hq/careers/internal/web"
	"github.com/velora-hq/careers/pkg/logging"
)

// Deps collects everything the router wires together.
type Deps struct {
	Config       *config.Config
	Jobs         *store.JobStore
	Applications *store.ApplicationStore
	Resumes      *upload.Saver
	Mailer       *mailer.Mailer
	Log          *logging.Logger
}

var phonePattern = regexp.MustCompile(`^\+?[0-9()\-\s.]{7,20}$`)

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	}
}

// NewRouter builds the full HTTP surface: public pages, the application
// flow, static uploads, and the session-gated admin console.
func NewRouter(d Deps) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsCfg))

	sessionStore := cookie.NewStore([]byte(d.Config.SessionSecret))
	r.Use(sessions.Sessions("admin_session", sessionStore))

	r.SetHTMLTemplate(web.Templates())
	r.MaxMultipartMemory = upload.MaxSize
	r.Static("/uploads", d.Config.UploadDir)

	pub := NewPublicHandler(d.Jobs, d.Applications, d.Resumes, d.Mailer, d.Log)
	admin := NewAdminHandler(d.Config, d.Jobs, d.Applications, d.Mailer, d.Log)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", pub.Home)
	r.GET("/about", pub.About)
	r.GET("/contact", pub.Contact)
	r.GET("/jobs", pub.Jobs)
	r.GET("/jobs/:id/apply", pub.ApplyForm)
	r.POST("/jobs/:id/apply", pub.Apply)

	r.GET("/admin", admin.Console)
	r.POST("/admin", admin.Console)
	r.POST("/admin/login", admin.Login)
	r.POST("/admin/logout", admin.Logout)

	mut := r.Group("/admin", RequireAdmin())
	mut.POST("/jobs", admin.CreateJob)
	mut.POST("/jobs/:id/delete", admin.DeleteJob)
	mut.POST("/applications/:id/delete", admin.DeleteApplication)
	mut.POST("/applications/:id/reject", admin.RejectApplication)

	return r
}
