package auth

import "github.com/golang-jwt/jwt/v5"

// Identity is the authenticated principal: a store account. The password
// used at login never appears here.
type Identity struct {
	Username string `json:"username"`
	Store    string `json:"store"`
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	Username string `json:"username"`
	Store    string `json:"store"`
	jwt.RegisteredClaims
}

// Identity extracts the principal carried by the claims.
func (c *AccessTokenClaims) Identity() Identity {
	return Identity{Username: c.Username, Store: c.Store}
}
