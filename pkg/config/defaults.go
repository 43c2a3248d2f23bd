package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "courtside"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeedCourts = true

	// Per-minute rates by surface type.
	DefaultRateGrass           = 10.0
	DefaultRateAsphalt         = 15.0
	DefaultRateClay            = 12.0
	DefaultRateArtificialGrass = 18.0

	DefaultKafkaEventsTopic = "reservation-events"
)
