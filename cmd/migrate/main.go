package main

import (
	"context"
	"log"
	"time"

	"giziai-be/internal/config"
	"giziai-be/internal/entity"
	"giziai-be/internal/model"
	"giziai-be/internal/repository/specification"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// 1. Extensions GORM AutoMigrate does not handle
	color.Yellow("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 2. AutoMigrate all models
	color.Yellow("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.KnowledgeFile{},
		&model.DocumentEmbedding{},
		&model.ChatLog{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. ANN index for the vector column
	color.Yellow("Step 3: Creating vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_document_embeddings_vector
		ON document_embeddings USING hnsw (embedding_value vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		color.Red("Warn: Failed to create vector index: %v. Continuing...", err)
	}

	// 4. Seed the admin user
	color.Yellow("Step 4: Seeding admin user...")
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)

	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		color.Red("Warn: ADMIN_USERNAME / ADMIN_PASSWORD not set, skipping seed")
	} else {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: cfg.Admin.Username})
		if err != nil {
			log.Fatalf("Error: Admin lookup failed: %v", err)
		}
		if existing != nil {
			color.Yellow("Admin user %q already exists, skipping", cfg.Admin.Username)
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Error: Password hash failed: %v", err)
			}
			admin := &entity.User{
				Id:           uuid.New(),
				Username:     cfg.Admin.Username,
				PasswordHash: string(hash),
				Role:         "admin",
				CreatedAt:    time.Now(),
			}
			if err := uow.UserRepository().Create(ctx, admin); err != nil {
				log.Fatalf("Error: Admin seed failed: %v", err)
			}
			color.Green("Admin user %q created", cfg.Admin.Username)
		}
	}

	color.Green("Migration complete.")
}
