package database

import (
	"testing"

	"github.com/gdg-garage/venue-events-api/internal/config"
	"gorm.io/gorm"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{driver: "", name: "sqlite"},
		{driver: "sqlite", name: "sqlite"},
		{driver: "postgres", name: "postgres"},
		{driver: "mysql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := Dialector(&config.Config{DatabaseDriver: tt.driver, DatabaseDSN: ":memory:"})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for driver %q", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dialector returned error: %v", err)
			}
			if d.Name() != tt.name {
				t.Errorf("expected dialector %s, got %s", tt.name, d.Name())
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	d, err := Dialector(&config.Config{DatabaseDriver: "sqlite", DatabaseDSN: ":memory:"})
	if err != nil {
		t.Fatalf("Dialector returned error: %v", err)
	}
	db, err := gorm.Open(d, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	for _, table := range []string{"users", "event_locations", "file_uploads", "recurring_events", "single_events"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}
}
