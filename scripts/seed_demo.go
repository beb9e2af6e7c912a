// Seeds a demo instructor, student and a published course with two modules,
// lessons and an assessment. Intended for local development only.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"encoding/json"
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	instructor := &model.User{
		FullName: "Demo Instructor",
		Email:    "instructor@learnhub.local",
		Password: string(password),
		Role:     model.Instructor,
		Domain:   "backend",
	}
	if err := db.Where(model.User{Email: instructor.Email}).FirstOrCreate(instructor).Error; err != nil {
		log.Fatalf("Failed to seed instructor: %v", err)
	}

	student := &model.User{
		FullName: "Demo Student",
		Email:    "student@learnhub.local",
		Password: string(password),
		Role:     model.Student,
		Domain:   "backend",
	}
	if err := db.Where(model.User{Email: student.Email}).FirstOrCreate(student).Error; err != nil {
		log.Fatalf("Failed to seed student: %v", err)
	}

	course := &model.Course{
		Title:        "Go for Backend Engineers",
		Description:  "HTTP services, persistence and deployment in Go.",
		Domain:       "backend",
		Status:       model.CoursePublished,
		InstructorID: instructor.ID,
	}
	if err := db.Where(model.Course{Title: course.Title}).FirstOrCreate(course).Error; err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	modules := []struct {
		title   string
		lessons []string
	}{
		{"Getting Started", []string{"Installing the toolchain", "Your first service"}},
		{"Persistence", []string{"Talking to MySQL", "Migrations"}},
	}

	for i, m := range modules {
		cm := &model.CourseModule{
			CourseID: course.ID,
			Title:    m.title,
			Order:    i + 1,
		}
		if err := db.Where(model.CourseModule{CourseID: course.ID, Title: m.title}).FirstOrCreate(cm).Error; err != nil {
			log.Fatalf("Failed to seed module: %v", err)
		}
		for j, title := range m.lessons {
			lesson := &model.Lesson{
				ModuleID: cm.ID,
				Title:    title,
				Kind:     model.LessonVideo,
				Duration: 600,
				Order:    j + 1,
			}
			if err := db.Where(model.Lesson{ModuleID: cm.ID, Title: title}).FirstOrCreate(lesson).Error; err != nil {
				log.Fatalf("Failed to seed lesson: %v", err)
			}
		}

		if i == len(modules)-1 {
			assessment := &model.Assessment{
				ModuleID:     cm.ID,
				Title:        "Persistence check",
				PassingScore: 70,
			}
			if err := db.Where(model.Assessment{ModuleID: cm.ID}).FirstOrCreate(assessment).Error; err != nil {
				log.Fatalf("Failed to seed assessment: %v", err)
			}

			options, _ := json.Marshal([]string{"database/sql", "net/http", "encoding/json"})
			question := &model.Question{
				AssessmentID:  assessment.ID,
				Content:       "Which package opens a SQL connection?",
				Options:       options,
				CorrectOption: 0,
				Order:         1,
			}
			if err := db.Where(model.Question{AssessmentID: assessment.ID, Order: 1}).FirstOrCreate(question).Error; err != nil {
				log.Fatalf("Failed to seed question: %v", err)
			}
		}
	}

	log.Println("Demo data seeded")
}
