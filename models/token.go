package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access ve refresh token'ların payload'u.
//
// Kullanıcı kimliği RegisteredClaims.Subject ("sub") içinde taşınır,
// her token'a uuid tabanlı benzersiz bir ID ("jti") verilir. Ek custom
// claim yoktur — token ne kadar az şey taşırsa o kadar az şey sızar.
//
// Struct models paketinde yaşar çünkü hem services hem middleware
// tarafından kullanılır; her iki katman da models'e bağımlı olabilir.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// UserID, token'ın ait olduğu kullanıcının ID'sini döner.
func (c *TokenClaims) UserID() string {
	return c.Subject
}
