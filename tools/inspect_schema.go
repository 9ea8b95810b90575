package main

import (
	"flag"
	"fmt"
	"log"

	"ariga.io/atlas-provider-gorm/gormschema"
	"github.com/localnerve/dronedb/internal/database"
	"github.com/localnerve/dronedb/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	dialect := flag.String("dialect", "mysql", "mysql, postgres, sqlite or sqlserver")
	live := flag.Bool("live", false, "migrate an in-memory SQLite database and print what GORM created")
	flag.Parse()

	if *live {
		inspectSQLite()
		return
	}

	// Render the DDL atlas derives from the GORM models
	stmts, err := gormschema.New(*dialect).Load(&models.Drone{})
	if err != nil {
		log.Fatalf("Failed to load %s schema: %v", *dialect, err)
	}
	fmt.Println(stmts)
}

func inspectSQLite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}
}
