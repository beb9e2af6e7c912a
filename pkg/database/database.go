package database

import (
	"fmt"
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the MySQL connection. Schema migration runs unless migrate is
// false (production deploys that manage schema out of band pass the -migrate
// flag explicitly).
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique-violation races (enrollment, certificate, lesson progress)
		// are handled via errors.Is(err, gorm.ErrDuplicatedKey).
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

// AutoMigrate creates/updates the schema. Shared with the test harness so the
// in-memory variant runs against the identical layout.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Assessment{},
		&model.Question{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.AssessmentAttempt{},
		&model.Certificate{},
		&model.ForumThread{},
		&model.ForumReply{},
		&model.ThreadVote{},
	)
}
