package models

import (
	"log"

	"galeria/config"
	"galeria/db"
	"galeria/utils"
)

func Init() {
	migrate()
	ensureAdminMaster()
}

func migrate() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&MediaItem{})
	db.Instance.AutoMigrate(&AlbumTag{})
	db.Instance.AutoMigrate(&MediaTag{})
	db.Instance.AutoMigrate(&Story{})
	db.Instance.AutoMigrate(&Event{})
	db.Instance.AutoMigrate(&MusicTrack{})
}

// ensureAdminMaster keeps the bootstrap invariant: at least one approved
// ADMIN_MASTER exists at all times. The guarded user mutations protect it
// from then on.
func ensureAdminMaster() {
	if adminMasterCount(db.Instance) > 0 {
		return
	}
	password := config.MASTER_PASSWORD
	if password == "" {
		password = utils.RandSalt(12)
		log.Printf("Generated password for initial account %q: %s", config.MASTER_NAME, password)
	}
	master, err := UserCreate(config.MASTER_NAME, "", password, RoleAdminMaster)
	if err != nil {
		panic(err)
	}
	log.Printf("Created initial ADMIN_MASTER account %q (id %d)", master.Name, master.ID)
}
