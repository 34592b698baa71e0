package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/configs"
	"github.com/iamaamins/sporkbox-client-sub001/routes"
)

func main() {
	cfg := configs.LoadConfig()

	// Local state store (skipped when redis is the driver)
	if cfg.StoreDriver != "redis" {
		configs.ConnectionDB(cfg.DBSource)
		configs.SetupDatabase()
	}

	r := gin.Default()
	routes.RegisterRoutes(r, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("ordering service running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
