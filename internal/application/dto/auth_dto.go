package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

// LoginResponse token emitido y rol del usuario.
type LoginResponse struct {
	Token   string `json:"token"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}
