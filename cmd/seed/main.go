// Command seed loads a small set of demo users, groups and posts so a
// fresh database has something to paginate.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/antonv42/textpost/backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)

	password, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := []*models.User{
		{Username: "alice", Email: "alice@example.com", Password: string(password)},
		{Username: "bob", Email: "bob@example.com", Password: string(password)},
	}
	for _, u := range users {
		if err := userRepo.CreateUser(u); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Username, err)
		}
	}

	group := &models.Group{
		Title:       "General",
		Slug:        "general",
		Description: "Anything goes.",
	}
	if err := groupRepo.CreateGroup(group); err != nil {
		log.Fatalf("Failed to create group: %v", err)
	}

	// Enough posts to spill onto a second page
	posts := make([]*models.Post, 0, cfg.PostsOnPage+3)
	for i := 0; i < cfg.PostsOnPage+3; i++ {
		author := users[i%len(users)]
		post := &models.Post{
			Text:     fmt.Sprintf("Demo post #%d", i+1),
			PubDate:  time.Now().Add(-time.Duration(i) * time.Hour),
			AuthorID: author.ID,
		}
		if i%2 == 0 {
			post.GroupID = &group.ID
		}
		posts = append(posts, post)
	}
	if err := postRepo.CreatePosts(posts); err != nil {
		log.Fatalf("Failed to bulk-insert posts: %v", err)
	}

	log.Printf("Seeded %d users, 1 group, %d posts.", len(users), len(posts))
}
