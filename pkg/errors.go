// Package pkg, katmanlar arasında paylaşılan küçük yardımcıları barındırır:
// domain error'ları ve standart JSON response envelope'u.
//
// Domain error'lar sentinel değer olarak tanımlanır — service katmanı
// bunları fmt.Errorf("%w: detay", ...) ile sarar, handler katmanı
// errors.Is ile eşleştirip HTTP status code'a çevirir. Böylece service
// katmanı HTTP'den tamamen habersiz kalır.
package pkg

import "errors"

// Domain-level error'lar. HTTP eşleşmesi mapErrorToStatus'ta yapılır:
// ErrNotFound → 404, ErrUnauthorized → 401, ErrForbidden → 403,
// ErrAlreadyExists → 409, ErrBadRequest → 400, geri kalan her şey → 500.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
