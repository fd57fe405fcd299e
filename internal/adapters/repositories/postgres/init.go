package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/iwtcode/deviceBridge/internal/adapters/repositories/memory"
	"github.com/iwtcode/deviceBridge/internal/adapters/repositories/postgres/command_journal"
	"github.com/iwtcode/deviceBridge/internal/config"
	"github.com/iwtcode/deviceBridge/internal/domain/entities"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Размер журнала в памяти, когда база данных отключена
const memoryJournalSize = 1000

type Repository struct {
	interfaces.CommandJournalRepository
}

func NewRepository(cfg *config.AppConfig, appLogger *logging.Logger) (interfaces.CommandJournalRepository, error) {
	if !cfg.Database.Enable {
		appLogger.Info("Database disabled, command journal kept in memory", "size", memoryJournalSize)
		return &Repository{
			CommandJournalRepository: memory.NewCommandJournal(memoryJournalSize),
		}, nil
	}

	// Шаг 1: Подключение к служебной БД 'postgres' для проверки и создания целевой БД
	dsnPostgres := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Port,
	)

	db, err := gorm.Open(postgres.Open(dsnPostgres), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к служебной БД 'postgres': %w", err)
	}

	// Шаг 2: Проверка существования нужной БД
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)"
	if err := db.Raw(query, cfg.Database.DBName).Scan(&exists).Error; err != nil {
		return nil, fmt.Errorf("не удалось проверить существование БД '%s': %w", cfg.Database.DBName, err)
	}

	// Шаг 3: Если БД не существует, создаем ее
	if !exists {
		appLogger.Info("Database not found. Creating...", "db_name", cfg.Database.DBName)
		createDbQuery := fmt.Sprintf("CREATE DATABASE %s", cfg.Database.DBName)
		if err := db.Exec(createDbQuery).Error; err != nil {
			return nil, fmt.Errorf("не удалось создать БД '%s': %w", cfg.Database.DBName, err)
		}
		appLogger.Info("Database created successfully.", "db_name", cfg.Database.DBName)
	} else {
		appLogger.Info("Database already exists.", "db_name", cfg.Database.DBName)
	}

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	// Шаг 4: Основное подключение к целевой базе данных
	dsnApp := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.Port,
	)

	// Запросы журнала пишутся в общий лог приложения
	gormLogger := logger.New(
		log.New(appLogger.Logrus().Writer(), "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	appDb, err := gorm.Open(postgres.Open(dsnApp), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных '%s': %w", cfg.Database.DBName, err)
	}

	if err := autoMigrate(appDb); err != nil {
		return nil, fmt.Errorf("ошибка выполнения автомиграций: %w", err)
	}

	return &Repository{
		CommandJournalRepository: command_journal.NewCommandJournalRepository(appDb),
	}, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entities.CommandRecord{})
}
