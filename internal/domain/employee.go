package domain

// Employee is a staff directory record. The console only reads these;
// their lifecycle is owned by the directory-management process.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url"`
	Active   bool   `json:"active"`
}
