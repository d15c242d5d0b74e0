package newsdesk

type User struct {
	Username string `db:"username" json:"username"`
}

type Topic struct {
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}
