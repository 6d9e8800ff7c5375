package models

// EntryType distinguishes files from directories.
type EntryType string

const (
	TypeFile EntryType = "file"
	TypeDir  EntryType = "dir"
)

// RootParent is the sentinel parent id of top-level entries.
const RootParent = "root"

// User represents a registered account. The password is kept verbatim inside the
// persisted collection (the mock contract forbids hashing) but must never appear
// in an API response; handlers return PublicUser instead.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// PublicUser is the client-facing view of a User, with the password omitted.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the client-facing view of u.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Entry is a file or directory node in a user's tree.
//
// Content, MIME and Size are only present for files; directories carry neither.
// Size is always derived from Content and never set independently. Modified is a
// millisecond timestamp, restamped on every content/name/parent mutation.
type Entry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     EntryType `json:"type"`
	Parent   string    `json:"parent"`
	UserID   string    `json:"userId"`
	Content  *string   `json:"content,omitempty"`
	MIME     string    `json:"mime,omitempty"`
	Size     *int      `json:"size,omitempty"`
	Modified int64     `json:"modified"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Type == TypeDir }

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
