package user

type User struct {
	ID        int    `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Active    bool   `json:"active"`
	Staff     bool   `json:"staff"`
	Admin     bool   `json:"admin"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
