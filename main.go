package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"echochamber/api"
	"echochamber/auth"
	"echochamber/common"
	"echochamber/generate"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	repo := initializeRepository()
	defer repo.Close()
	authSvc := auth.NewService(repo)

	gen := generate.NewDefaultGenerator()
	if gen == nil {
		log.Fatal("no generation provider configured: set GEMINI_API_KEY or COHERE_API_KEY")
	}
	log.Printf("Using generation model: %s", gen.ModelName())
	builder := generate.NewBuilder(gen)

	s3Client, s3Bucket, s3Prefix := initializeS3()

	server := api.NewServer(authSvc, builder, api.Config{
		S3:       s3Client,
		S3Bucket: s3Bucket,
		S3Prefix: s3Prefix,
	})
	r := api.NewRouter(server)

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/login")
	log.Println("  POST /api/auth/logout")
	log.Println("  POST /api/auth/verify")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/generate")
	log.Println("  GET  /api/generate/status")
	log.Println("  GET  /api/generate/result")
	log.Println("  GET  /api/generate/bundle")
	log.Println("  POST /api/generate/publish")
	log.Println("  POST /api/generate/reset")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeRepository picks Redis when REDIS_ADDR is set, otherwise an
// in-memory store that lives for the process.
func initializeRepository() auth.Repository {
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) == "" {
		log.Println("REDIS_ADDR not set; using in-memory account store")
		return auth.NewMemoryRepository()
	}

	repo, err := auth.NewRedisRepositoryFromEnv()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis account store")
	return repo
}

// initializeS3 returns an S3 client and target bucket/prefix if configured via env.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX, S3_USE_PATH_STYLE=true
func initializeS3() (*common.S3, string, string) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		return nil, "", ""
	}

	cfg := common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := common.NewS3(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (publishing disabled)", err)
		return nil, "", ""
	}

	prefix := strings.TrimSpace(os.Getenv("S3_PREFIX"))
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return client, bucket, prefix
}
