// Upload tool: pushes every file of a directory to media/{file} in blob
// storage and prints the public URLs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"kovan/seed"
	"kovan/storage"
)

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "public/media", "directory of media files to upload")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cloudinaryURL := os.Getenv("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		log.Fatal("❌ CLOUDINARY_URL must be set")
	}
	blob, err := storage.NewCloudinary(cloudinaryURL)
	if err != nil {
		log.Fatal("❌ Invalid CLOUDINARY_URL: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("🚀 Starting media upload...")
	results, err := seed.UploadMedia(ctx, blob, dir)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		fmt.Printf("%s\t%s\n", r.File, r.URL)
	}
	log.Printf("✨ Upload complete! %d uploaded, %d failed", len(results)-failed, failed)
}
