package main

import (
	"flag"
	"fmt"
	"log"

	"animix/api/handlers"
	"animix/api/middleware"
	"animix/api/routes"
	"animix/config"
	"animix/db"
	"animix/services"
	"animix/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func buildStore(conf config.StorageConfig) (store.DocumentStore, error) {
	switch conf.Driver {
	case "redis":
		return store.NewRedisStore(conf.Redis)
	case "postgres", "":
		orm, err := db.Connect(conf)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(orm)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", conf.Driver)
	}
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	conf := config.AppConfig
	log.Println("Starting server...")

	documents, err := buildStore(conf.Storage)
	if err != nil {
		panic("Failed to initialize document store: " + err.Error())
	}
	documents = middleware.InstrumentStore(documents)

	uploader, err := services.NewS3Uploader(conf.S3)
	if err != nil {
		panic("Failed to initialize S3 uploader: " + err.Error())
	}

	userService := &services.UserService{Store: documents, Media: uploader}
	animeService := &services.AnimeService{Store: documents}
	api := handlers.NewAPI(userService, animeService, uploader)

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.PrometheusMiddleware("animix"))

	routes.PublicApi(router, api)

	addr := fmt.Sprintf("%s:%d", conf.Backend.Host, conf.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
