package repo

import (
	"IEats/internal/model"
	"fmt"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// У каждого теста своя база, внешние ключи включены.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// seedUsers создаёт пользователей с заданными id (на них ссылаются записи).
func seedUsers(t *testing.T, db *gorm.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		u := model.User{ID: id, Username: fmt.Sprintf("user%d", id), Email: fmt.Sprintf("user%d@example.com", id), PasswordHash: "x"}
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("failed to seed user %d: %v", id, err)
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := SQLiteDSN(""); got != "file:ieats.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Fatalf("unexpected default dsn: %q", got)
	}
	if got := SQLiteDSN("file:x.db?mode=rwc"); !strings.HasPrefix(got, "file:x.db?mode=rwc&_pragma=foreign_keys(1)") {
		t.Fatalf("unexpected dsn: %q", got)
	}
	if got := SQLiteDSN("file:y.db?_pragma=foreign_keys(0)"); got != "file:y.db?_pragma=foreign_keys(0)" {
		t.Fatalf("explicit pragma must be kept: %q", got)
	}
}

func TestDialector(t *testing.T) {
	if Dialector("postgres://u:p@localhost/db").Name() != "postgres" {
		t.Fatal("postgres dsn must use postgres dialector")
	}
	if Dialector("mysql://u:p@tcp(localhost:3306)/db").Name() != "mysql" {
		t.Fatal("mysql dsn must use mysql dialector")
	}
	if Dialector("diary.db").Name() != "sqlite" {
		t.Fatal("file path must use sqlite dialector")
	}
	if got := mysqlDSN("u:p@tcp(h:3306)/db"); got != "u:p@tcp(h:3306)/db?charset=utf8mb4&parseTime=True&loc=UTC" {
		t.Fatalf("unexpected mysql dsn: %q", got)
	}
}
