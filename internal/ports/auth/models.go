package auth

import "time"

// Claims representa la identidad confiable del caller.
type Claims struct {
	Username string
	Email    string
}

// Session es una sesión de login guardada del lado del servidor.
type Session struct {
	ID        string
	Claims    Claims
	ExpiresAt time.Time
}
