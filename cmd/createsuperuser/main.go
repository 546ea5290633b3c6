// Command createsuperuser provisions an administrative account. Whatever role
// is implied by the flags, the result is role=admin with the staff and
// superuser flags set.
//
//	createsuperuser -username admin -email admin@example.com -password <secret>
package main

import (
	"context"
	"flag"
	"time"

	"github.com/team9/crm-auth/internal/core/ports"
	"github.com/team9/crm-auth/internal/core/service"
	"github.com/team9/crm-auth/internal/core/token"
	"github.com/team9/crm-auth/internal/infrastructure/config"
	"github.com/team9/crm-auth/internal/infrastructure/db/mongo"
	"github.com/team9/crm-auth/pkg/hasher"
	"github.com/team9/crm-auth/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username for the new superuser")
	email := flag.String("email", "", "email for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	firstName := flag.String("first-name", "", "optional first name")
	lastName := flag.String("last-name", "", "optional last name")
	phone := flag.String("phone", "", "optional phone number")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongo.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}

	codec := token.NewCodec(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		Issuer:        cfg.JWT.Issuer,
	})

	authService := service.NewAuthService(userRepo, hasher.NewBcrypt(0), codec)

	user, err := authService.CreateSuperuser(ctx, ports.RegisterInput{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Phone:     *phone,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create superuser")
	}

	log.Info().
		Str("id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("superuser created")
}
