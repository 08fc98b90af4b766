package repo

import (
	"IEats/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrDuplicateID: запись с таким id у пользователя уже существует.
var ErrDuplicateID = errors.New("duplicate id")

const defaultSQLitePath = "ieats.db"

// InitDB открывает БД по строке подключения и применяет миграции.
// postgres://… и mysql://… открываются соответствующими драйверами,
// всё остальное считается путём к файлу SQLite.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if isSQLite(dsn) {
		// SQLite не любит конкурентных писателей: одно соединение, транзакции идут по очереди
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Dialector выбирает драйвер gorm по строке подключения.
func Dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn)
	case strings.HasPrefix(dsn, "mysql://"):
		return mysql.Open(mysqlDSN(strings.TrimPrefix(dsn, "mysql://")))
	default:
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: SQLiteDSN(dsn)}
	}
}

func isSQLite(dsn string) bool {
	_, ok := Dialector(dsn).(gormsqlite.Dialector)
	return ok
}

// SQLiteDSN превращает путь к файлу в DSN modernc.org/sqlite с включёнными внешними ключами.
func SQLiteDSN(path string) string {
	if path == "" {
		path = defaultSQLitePath
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// mysqlDSN дополняет DSN go-sql-driver параметрами, без которых не работают даты и utf8mb4.
func mysqlDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?charset=utf8mb4&parseTime=True&loc=UTC"
}

// Migrate создаёт/обновляет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Entry{},
		&model.EntryDish{},
		&model.EntryTag{},
		&model.WishlistItem{},
	)
}

// Ping проверяет доступность БД.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
