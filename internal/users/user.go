package users

type User struct {
	ID           int    `json:"id_usuario"`
	Nombre       string `json:"nombre"`
	PasswordHash string `json:"-"`
}

type userRequest struct {
	Nombre   string `json:"nombre"`
	Password string `json:"password"`
}
