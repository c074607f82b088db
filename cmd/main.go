package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"google.golang.org/api/option"

	"blogupBack/internal/config"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	cfg := config.LoadConfig()

	addr := cfg.Server.Address
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if addr == "" {
		addr = ":4001"
	}

	flagAddr := flag.String("addr", addr, "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	fcmClient, err := newMessagingClient(cfg.Firebase.CredentialsFile)
	if err != nil {
		// пуши не критичны для старта
		errorLog.Printf("firebase init: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := initializeApp(db, redisClient, fcmClient, cfg, errorLog, infoLog)

	go app.dispatcher.Run(ctx)
	go app.hub.Run(ctx)
	startCounterSync(ctx, app.listingRepo, infoLog, errorLog)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         *flagAddr,
		ErrorLog:     errorLog,
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("Starting server on %s", *flagAddr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}

// openDB открывает пул по драйверу из конфига: mysql в проде, pgx для
// локальной разработки.
func openDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "mysql", "pgx":
	case "":
		driver = "mysql"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newMessagingClient(credentialsFile string) (*messaging.Client, error) {
	if credentialsFile == "" {
		return nil, nil
	}
	ctx := context.Background()
	fbApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	return fbApp.Messaging(ctx)
}
