package config

const (
	// DefaultDatabasePath is the default path for the sqlite catalog
	DefaultDatabasePath = "./locallibrary.db"

	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	EnvironmentProduction = "production"
)
