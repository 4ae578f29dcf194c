package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5"

	"example.com/catalog-admin/app/internal/config"
	domuser "example.com/catalog-admin/app/internal/domain/user"
	mysqlrepo "example.com/catalog-admin/app/internal/infra/persistence/mysql"
	"example.com/catalog-admin/app/internal/infra/security"
	"example.com/catalog-admin/app/internal/infra/storage"
	authuc "example.com/catalog-admin/app/internal/usecase/auth"
	productuc "example.com/catalog-admin/app/internal/usecase/product"
	"example.com/catalog-admin/app/internal/interface/web"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("mysql open: %v", err)
	}
	defer db.Close()

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)

	tokenSvc := security.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	passwordSvc := security.NewBcryptService(0)
	authSvc := authuc.NewService(userRepo, passwordSvc, tokenSvc)
	productSvc := productuc.NewService(productRepo, store)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := ensureAdmin(context.Background(), userRepo, passwordSvc, cfg); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionKey))
	sessionStore.Options.HttpOnly = true

	srv := web.NewServer(web.Dependencies{
		AuthService:    authSvc,
		ProductService: productSvc,
		SessionStore:   sessionStore,
		Uploads:        http.Dir(store.Root()),
	})

	mux := http.NewServeMux()

	mux.HandleFunc("/health/mysql", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "mysql ping error: "+err.Error(), 500)
			return
		}
		w.Write([]byte("mysql ok"))
	})

	mux.HandleFunc("/health/pg", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		conn, err := pgx.Connect(ctx, cfg.PGDSN)
		if err != nil {
			http.Error(w, "pg connect error: "+err.Error(), 500)
			return
		}
		defer conn.Close(ctx)
		if err := conn.Ping(ctx); err != nil {
			http.Error(w, "pg ping error: "+err.Error(), 500)
			return
		}
		w.Write([]byte("pg ok"))
	})

	mux.Handle("/", srv.Router())

	log.Printf("listening on %s ...", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatal(err)
	}
}

// ensureAdmin creates the bootstrap admin account on first start so the
// admin screens are reachable on a fresh database.
func ensureAdmin(ctx context.Context, repo domuser.Repository, hasher *security.BcryptService, cfg config.Config) error {
	_, err := repo.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domuser.ErrUserNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, err = repo.Create(ctx, &domuser.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	return err
}
