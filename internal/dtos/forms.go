package dtos

// ApplicationForm carries the public apply form fields. The resume file
// arrives separately as a multipart file. The phone tag is a custom
// validation registered by the handlers package.
type ApplicationForm struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Phone string `form:"phone" binding:"required,phone"`
	Cover string `form:"cover"`
}

// JobForm carries the admin "add job" fields. Openings and Experience stay
// strings here; the store clamps and defaults them.
type JobForm struct {
	Title       string `form:"title" binding:"required"`
	Location    string `form:"location" binding:"required"`
	Description string `form:"description" binding:"required"`
	Openings    string `form:"openings"`
	Experience  string `form:"experience"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
