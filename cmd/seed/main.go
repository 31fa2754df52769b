// Seed tool: loads the demo fixtures (Home.json, Applications.json, Me.json)
// into the configured store. Run it once against an empty database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"kovan/config"
	"kovan/database"
	"kovan/seed"
	"kovan/store"
)

func main() {
	var dir, password string
	flag.StringVar(&dir, "fixtures", "fixtures", "directory holding the fixture JSON files")
	flag.StringVar(&password, "password", "", "optional login password for the demo user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}
	if cfg.StoreDriver != config.DriverMongo {
		log.Fatal("❌ Seeding needs STORE_DRIVER=mongo, the memory store does not outlive this process")
	}

	fixtures, err := seed.LoadFixtures(dir)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("❌ Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect(client)

	log.Println("🚀 Starting dummy data upload...")
	seeder := seed.New(store.NewMongoStore(client, cfg.MongoDatabase))
	seeder.Password = password
	sum, err := seeder.Run(ctx, fixtures)
	if err != nil {
		log.Println("❌ Error uploading data:", err)
		return
	}

	log.Println("🎉 ===== UPLOAD COMPLETE! =====")
	log.Printf("✅ %d posts uploaded (%d comments)", sum.Posts, sum.Comments)
	log.Printf("✅ %d programs uploaded", sum.Programs)
	log.Printf("✅ %d hashtags uploaded", sum.Hashtags)
	log.Printf("✅ %d badges uploaded", sum.Badges)
}
