package connection

import (
	"fmt"

	"duekeeper/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func DBConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&model.Tasks{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
