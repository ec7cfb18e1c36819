package main

import (
	"log"

	"github.com/flipfrenzy/flipfrenzy-backend/config"
)

func main() {
	db := config.SetupDatabase() // connects + migrates
	_ = db
	log.Println("✅ Database migration completed successfully")
}
