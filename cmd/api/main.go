package main

import (
	"log"

	_ "ordenes_servicio/docs"
	"ordenes_servicio/internal/adapter/cli"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Ordenes de Servicio API
// @version         1.0
// @description     Service-order registry for an auto-repair shop: catalogs, folio estimate, atomic order creation and order history.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("[main] %v", err)
	}
}
