// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	// Store selection: "firestore" (default) or "memory" (local dev).
	StoreBackend string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// Bucket for uploaded product images (empty = uploads disabled).
	GCSBucket string

	// Token signing: JWT_SECRET wins; otherwise JWT_SECRET_NAME is read from
	// Secret Manager (projects/<p>/secrets/<name>/versions/latest).
	JWTSecret     string
	JWTSecretName string
	JWTExpiresIn  string

	// Static login credential.
	AdminUserID   string
	AdminUsername string
	AdminPassword string

	// Extra allowed CORS origin for the deployed frontend.
	FrontendOrigin string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	return &Config{
		Port:         getenvDefault("PORT", "8080"),
		StoreBackend: getenvDefault("STORE_BACKEND", "firestore"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", os.Getenv("GCP_PROJECT_ID")),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTSecretName: os.Getenv("JWT_SECRET_NAME"),
		JWTExpiresIn:  getenvDefault("JWT_EXPIRES_IN", "168h"),

		AdminUserID:   getenvDefault("ADMIN_USER_ID", "1"),
		AdminUsername: getenvDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		FrontendOrigin: os.Getenv("FRONTEND_ORIGIN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
