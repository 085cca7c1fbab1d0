package config

// Environment variable names used by tests and ops tooling.
const (
	EnvAppEnv           = "CATALOG_APP_ENV"
	EnvPort             = "CATALOG_APP_PORT"
	EnvDBDSN            = "CATALOG_DB_DSN"
	EnvDBDriver         = "CATALOG_DB_DRIVER"
	EnvRedisURL         = "CATALOG_REDIS_URL"
	EnvStorageEndpoint  = "CATALOG_STORAGE_ENDPOINT"
	EnvStorageAccessKey = "CATALOG_STORAGE_ACCESS_KEY"
	EnvStorageSecretKey = "CATALOG_STORAGE_SECRET_KEY"
	EnvStorageBucket    = "CATALOG_STORAGE_BUCKET"
)
