package fixture

// YAMLFile is either a single request at the top level or a requests list.
type YAMLFile struct {
	Requests    []YAMLRequest `yaml:"requests"`
	YAMLRequest `yaml:",inline"`
}

type YAMLRequest struct {
	ID      string      `yaml:"id"`
	Content YAMLContent `yaml:"content"`
	Status  YAMLStatus  `yaml:"status"`
	User    YAMLUser    `yaml:"user"`
}

func (r YAMLRequest) empty() bool {
	return r.ID == "" && r.Content == (YAMLContent{}) && r.Status == (YAMLStatus{}) && r.User.Role == "" && r.User.Name == ""
}

type YAMLContent struct {
	Kind       string  `yaml:"kind"`
	Headline   *string `yaml:"headline"`
	WordCount  *int    `yaml:"wordCount"`
	Author     *string `yaml:"author"`
	Title      *string `yaml:"title"`
	Duration   *int    `yaml:"duration"`
	Transcript *string `yaml:"transcript"`
	Series     *string `yaml:"series"`

	HTML     string `yaml:"html"`
	HTMLFile string `yaml:"htmlFile"`
}

type YAMLStatus struct {
	Status       string  `yaml:"status"`
	LastModified string  `yaml:"lastModified"`
	PublishedAt  string  `yaml:"publishedAt"`
	Views        *int    `yaml:"views"`
	ArchivedAt   string  `yaml:"archivedAt"`
	Reason       *string `yaml:"reason"`
}

type YAMLUser struct {
	ID          *int64   `yaml:"id"`
	Name        string   `yaml:"name"`
	Email       string   `yaml:"email"`
	Role        string   `yaml:"role"`
	Sections    []string `yaml:"sections"`
	Articles    *int     `yaml:"articles"`
	Permissions []string `yaml:"permissions"`
}
