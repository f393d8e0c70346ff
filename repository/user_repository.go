// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface olmasının iki pratik faydası var:
//  1. Test: mock repository ile DB olmadan service testi yazılabilir
//  2. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
//
// Go'da interface implicit'tir — struct, interface'deki tüm method'ları
// implement ediyorsa otomatik olarak o interface'i sağlar.
package repository

import (
	"context"

	"github.com/ecemunal/taskora/models"
)

// UserRepository, kullanıcı tablosu işlemleri.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update, name ve email alanlarını günceller; updated_at yenilenir.
	Update(ctx context.Context, user *models.User) error
	// Delete, kullanıcıyı siler. FK cascade ile auth_sessions ve tasks
	// kayıtları da DB tarafında silinir.
	Delete(ctx context.Context, id string) error
}
