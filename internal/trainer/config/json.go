package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/reviewpulse/internal/flagx"
)

// JsonConfig is the intermediate DTO used only for reading JSON config
// files; values are copied into the runtime Config after unmarshalling.
type JsonConfig struct {
	CorpusPath     string  `json:"corpus_path"`
	ArtifactDir    string  `json:"artifact_dir"`
	Seed           int64   `json:"seed"`
	TestFraction   float64 `json:"test_fraction"`
	Epochs         int     `json:"epochs"`
	LearningRate   float64 `json:"learning_rate"`
	S3RootUser     string  `json:"s3_root_user"`
	S3RootPassword string  `json:"s3_root_password"`
	S3Bucket       string  `json:"s3_bucket"`
	S3Region       string  `json:"s3_region"`
	S3BaseEndpoint string  `json:"s3_base_endpoint"`
}

// parseJson loads configuration from the JSON file named by the -c/-config
// flags, if present. Missing file path means nothing is loaded; an
// unreadable or invalid file panics, matching flag-parsing behavior.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.CorpusPath != "" {
		config.CorpusPath = c.CorpusPath
	}
	if c.ArtifactDir != "" {
		config.ArtifactDir = c.ArtifactDir
	}
	if c.Seed != 0 {
		config.Seed = c.Seed
	}
	if c.TestFraction != 0 {
		config.TestFraction = c.TestFraction
	}
	if c.Epochs != 0 {
		config.Epochs = c.Epochs
	}
	if c.LearningRate != 0 {
		config.LearningRate = c.LearningRate
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
