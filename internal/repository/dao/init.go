package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Session{},
		&Student{},
		&Lead{},
		&CourseMaterial{},
		&Lesson{},
		&Assignment{},
		&Submission{},
		&Quiz{},
		&QuizQuestion{},
		&Attempt{},
		&Progress{},
		&Grade{},
	)
}
