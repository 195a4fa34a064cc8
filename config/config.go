package config

import (
	"os"
	"strings"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS = "0.0.0.0:8080"
	MYSQL_DSN    = ""           // MySQL will be used if this is set
	SQLITE_FILE  = "galeria.db" // SQLite will be used if MYSQL_DSN is not configured
	DATA_DIR     = "dados"      // Root directory for uploaded media (photos/, videos/, others/ subdirs)
	TMP_DIR      = "/tmp"       // Local scratch space in case of an S3 bucket
	PUBLIC_URL   = ""           // Prefix for returned media URLs; empty means relative "/uploads/..."
	DEBUG_MODE   = true

	// S3 storage is used instead of local disk when a bucket name is configured
	S3_BUCKET   = ""
	S3_REGION   = "us-east-1"
	S3_ENDPOINT = "" // For S3-compatible services
	S3_KEY      = ""
	S3_SECRET   = ""

	// Account created at first start so that at least one ADMIN_MASTER always exists
	MASTER_NAME     = "master"
	MASTER_PASSWORD = ""

	SESSION_KEY = "change me in production"
)

func init() {
	Load()
}

// Load re-reads the environment. Called again after the .env file is
// loaded, since package init runs before main can do that.
func Load() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("DATA_DIR", &DATA_DIR)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("PUBLIC_URL", &PUBLIC_URL)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("MASTER_NAME", &MASTER_NAME)
	readEnvString("MASTER_PASSWORD", &MASTER_PASSWORD)
	readEnvString("SESSION_KEY", &SESSION_KEY)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
