// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
// Deploy edilen binary'nin yanında migration dosyası taşımak gerekmez.
package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var embeddedFS embed.FS

// EmbeddedMigrations, migration SQL dosyalarını KÖK dizinde sunan fs.FS.
// embed.FS dosyaları "migrations/" prefix'i ile gömer — fs.Sub ile prefix
// soyulur, runMigrations düz dosya isimleriyle çalışır.
var EmbeddedMigrations = func() fs.FS {
	sub, err := fs.Sub(embeddedFS, "migrations")
	if err != nil {
		panic(err) // embed derleme zamanında garantili, buraya düşülmez
	}
	return sub
}()
