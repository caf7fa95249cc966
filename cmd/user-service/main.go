package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Gani-23/Oauth4.0/config"
	"github.com/Gani-23/Oauth4.0/internal/infrastructure/database/mongodb"
	"github.com/Gani-23/Oauth4.0/internal/user/app"
)

func main() {
	conf := config.CreateNewConfig()

	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", conf.MongoDBConfig.DBHost, conf.MongoDBConfig.DBPort), conf.MongoDBConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	userApp := app.App{
		DB:     db,
		Config: conf,
	}

	userApp.Start()
}
