package users

// Account representa una cuenta de la clínica.
// El password se guarda en texto plano: endurecer credenciales
// está explícitamente fuera de alcance.
type Account struct {
	FullName string
	Username string
	Password string
	Role     string
}

const (
	RoleOwner = "owner"
	RoleUser  = "user"
)

// DefaultOwner es la cuenta privilegiada; vive fuera de la lista de usuarios
// y normalmente se sobreescribe vía OWNER_USERNAME / OWNER_PASSWORD.
var DefaultOwner = Account{
	Username: "owner123",
	Password: "ownPass",
	Role:     RoleOwner,
}

// DefaultUsers siembra el store de usuarios la primera vez que se crea.
var DefaultUsers = []Account{
	{FullName: "Induwara Wijayarathne", Username: "induwarawij", Password: "induwara123", Role: RoleUser},
	{FullName: "Dilina Malshika", Username: "dilina", Password: "dilina123", Role: RoleUser},
}
