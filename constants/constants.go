package constants

import "os"

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetMediaDir is where the midi files to process live. There is no sane
// default so an empty string means the caller has to ask for it.
func GetMediaDir() string {
	return os.Getenv("MEDIA_PATH")
}

func GetDatasetPath() string {
	return getEnv("DATASET_PATH", "./out/dataset.dat")
}

func GetMetadataEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetServeAddr() string {
	return getEnv("SERVE_ADDR", ":8080")
}

const MetadataTable = "grooveset-metadata"

// microseconds per beat, i.e. 120 bpm
const DefaultTempo = 500000

const DefaultNumerator = 4
const DefaultDenominator = 4

// channel 10 in 1-indexed speak
const DrumChannel = 9

const NumPitches = 128

const DefaultRollWidth = 64
const DefaultSampleRate = 1000
