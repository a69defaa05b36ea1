package entity

// RoleAdmin rol exigido para modificar categorías cuando la auth está activa.
const RoleAdmin = "admin"

// User representa una cuenta que puede autenticarse. Hoy solo existe el administrador
// configurado por entorno; no hay persistencia de usuarios.
type User struct {
	Username     string
	PasswordHash string // bcrypt, nunca la contraseña en claro
	Role         string
}
