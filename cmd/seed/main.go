package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	dbpkg "github.com/yungbote/coursemarket-backend/internal/data/db"
	"github.com/yungbote/coursemarket-backend/internal/data/seed"
	"github.com/yungbote/coursemarket-backend/internal/platform/envutil"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/services"
)

func main() {
	printTokens := flag.Bool("tokens", false, "print dev bearer tokens for the seeded users")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, *printTokens); err != nil {
		log.Error("Seed failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *logger.Logger, printTokens bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := dbpkg.Open(log, dbpkg.ConfigFromEnv(log))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()
	if err := dbpkg.AutoMigrateAll(store.DB()); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	res, err := seed.NewSeeder(store.DB(), log).Demo(ctx)
	if err != nil {
		return err
	}
	if !printTokens {
		return nil
	}

	auth := services.NewAuthService(log, envutil.String("JWT_SECRET_KEY", "defaultsecret", log))
	learnerTok, err := auth.SignToken(res.Learner.ID, res.Learner.Role, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("sign learner token: %w", err)
	}
	instructorTok, err := auth.SignToken(res.Instructor.ID, res.Instructor.Role, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("sign instructor token: %w", err)
	}
	fmt.Printf("learner    %s %s\n", res.Learner.Email, learnerTok)
	fmt.Printf("instructor %s %s\n", res.Instructor.Email, instructorTok)
	return nil
}
