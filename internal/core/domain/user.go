package domain

// User is an agent of the application. Orders, payments and settlements all
// record the acting agent's ID.
type User struct {
	UserID       string `json:"userID"`
	Ref          string `json:"ref"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
	SoftDelete
}
