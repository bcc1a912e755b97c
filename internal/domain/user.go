package domain

// Role is the discriminant of the user family.
type Role string

const (
	RoleEditor     Role = "editor"
	RoleJournalist Role = "journalist"
	RoleAdmin      Role = "admin"
)

// Profile holds the fields every user carries regardless of role.
type Profile struct {
	ID    int64
	Name  string
	Email string
}

// User is a newsroom member. Editor, Journalist and Admin are the only members.
type User interface {
	Role() Role
	Identity() Profile
	user()
}

// Editor manages one or more sections.
type Editor struct {
	Profile
	Sections []string
}

// Journalist writes articles.
type Journalist struct {
	Profile
	Articles int
}

// Admin holds explicit permissions.
type Admin struct {
	Profile
	Permissions []string
}

func (Editor) Role() Role     { return RoleEditor }
func (Journalist) Role() Role { return RoleJournalist }
func (Admin) Role() Role      { return RoleAdmin }

func (e Editor) Identity() Profile     { return e.Profile }
func (j Journalist) Identity() Profile { return j.Profile }
func (a Admin) Identity() Profile      { return a.Profile }

func (Editor) user()     {}
func (Journalist) user() {}
func (Admin) user()      {}

// User field names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldRole        = "role"
	FieldSections    = "sections"
	FieldArticles    = "articles"
	FieldPermissions = "permissions"
)
