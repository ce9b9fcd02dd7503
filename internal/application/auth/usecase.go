package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/bymsoft/inventario-lotes/internal/domain"
	"github.com/bymsoft/inventario-lotes/pkg/jwt"
)

// Usuario credencial local: nombre, hash bcrypt y rol.
type Usuario struct {
	Nombre string
	Hash   string
	Rol    string // "administrador" | "empleado"
}

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra la lista fija de usuarios configurados.
// No hay registro ni gestión de cuentas: las credenciales viven en la
// configuración del despliegue.
type AuthUseCase struct {
	usuarios []Usuario
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(usuarios []Usuario, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, jwtCfg: jwtCfg}
}

// Login verifica usuario y contraseña (bcrypt) y emite un JWT con el rol.
// Devuelve ErrCredenciales ante cualquier combinación inválida, sin distinguir
// usuario inexistente de contraseña incorrecta.
func (uc *AuthUseCase) Login(usuario, contrasena string) (token, rol string, err error) {
	for _, u := range uc.usuarios {
		if u.Nombre != usuario || u.Hash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(contrasena)) != nil {
			break
		}
		tok, err := jwt.Generate(uc.jwtCfg.Secret, u.Nombre, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return "", "", err
		}
		return tok, u.Rol, nil
	}
	return "", "", domain.ErrCredenciales
}
