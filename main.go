package main

import (
	"context"
	"log"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	"github.com/ashil31/Admin-Panel/mailingservices"
	"github.com/ashil31/Admin-Panel/notifications"
	"github.com/ashil31/Admin-Panel/server"
	"github.com/ashil31/Admin-Panel/services"
	"github.com/ashil31/Admin-Panel/ws"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	// Mobile push mirror is optional; the dashboard works on websockets
	// alone.
	var push services.PushMirror
	if conf.FirebaseCredentialsFile != "" {
		fcm, err := notifications.NewFCM(context.Background(), conf.FirebaseCredentialsFile)
		if err != nil {
			log.Fatalf("error initializing FCM: %v", err)
		}
		push = fcm
		log.Println("Firebase Messaging client initialized")
	}

	gormDB := db.GetDB(conf)
	adminRepo := db.NewAdminRepo(gormDB)
	userRepo := db.NewUserRepo(gormDB)
	rewardRepo := db.NewRewardRepo(gormDB)

	hub := ws.NewHub()
	go hub.Run()

	authService := services.NewAuthService(adminRepo, mailgunClient, conf)
	userService := services.NewUserService(userRepo, rewardRepo, hub, push, conf)
	rewardService := services.NewRewardService(userRepo, rewardRepo, hub, push, conf)
	exportService := services.NewExportService(rewardRepo, conf)
	mediaService := services.NewMediaService(adminRepo, conf)

	s := &server.Server{
		Config:           conf,
		Mail:             mailgunClient,
		AdminRepository:  adminRepo,
		UserRepository:   userRepo,
		RewardRepository: rewardRepo,
		AuthService:      authService,
		UserService:      userService,
		RewardService:    rewardService,
		ExportService:    exportService,
		MediaService:     mediaService,
		Hub:              hub,
	}

	s.Start()
}
