package auth

import "context"

// UserResolver resuelve un username a sus claims (cuenta owner o usuario registrado).
// La capa de usuarios lo implementa; el middleware solo depende de este port.
type UserResolver interface {
	Resolve(ctx context.Context, username string) (Claims, error)
}
