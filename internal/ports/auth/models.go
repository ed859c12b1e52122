package auth

// Claims representa la identidad de la sesión actual.
type Claims struct {
	Username string
	FullName string
	Role     string
}

const (
	RoleOwner = "owner"
	RoleUser  = "user"
)

// IsOwner indica si la sesión pertenece a la cuenta privilegiada de la clínica.
func (c Claims) IsOwner() bool {
	return c.Role == RoleOwner
}
