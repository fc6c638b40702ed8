// Package config handles configuration for the offline trainer, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds settings for one training run.
//
// Fields:
//   - CorpusPath: CSV corpus with review/sentiment columns.
//   - ArtifactDir: directory the fitted artifacts are written to.
//   - Seed: random seed for the train/test split.
//   - TestFraction: share of the corpus held out for evaluation.
//   - Epochs / LearningRate: gradient-descent parameters.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage settings; artifacts are uploaded when S3Bucket is set.
type Config struct {
	CorpusPath     string
	ArtifactDir    string
	Seed           int64
	TestFraction   float64
	Epochs         int
	LearningRate   float64
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.CorpusPath = "product_reviews.csv"
	c.ArtifactDir = "artifacts"
	c.Seed = 42
	c.TestFraction = 0.2
	c.Epochs = 300
	c.LearningRate = 0.5
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
