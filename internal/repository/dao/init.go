package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&Chapter{},
		&User{},
		&Event{},
		&EventApproval{},
		&CalendarBlock{},
		&ProctorMapping{},
		&ProctorUpdate{},
		&EventAssignment{},
		&EventDocument{},
		&Notification{},
	)
}
