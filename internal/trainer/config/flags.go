package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/reviewpulse/internal/flagx"
)

// parseFlags populates trainer Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   CSV corpus path
//	-o string   artifact output directory
//	-seed int   split seed
//	-t float    test fraction
//	-n int      training epochs
//	-l float    learning rate
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name (empty disables upload)
//	-g string   S3 region
//	-e string   S3 base endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-o", "-seed", "-t", "-n", "-l", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("trainer", flag.ContinueOnError)

	fs.StringVar(&config.CorpusPath, "f", config.CorpusPath, "CSV corpus path")
	fs.StringVar(&config.ArtifactDir, "o", config.ArtifactDir, "artifact output directory")
	fs.Int64Var(&config.Seed, "seed", config.Seed, "train/test split seed")
	fs.Float64Var(&config.TestFraction, "t", config.TestFraction, "held-out test fraction")
	fs.IntVar(&config.Epochs, "n", config.Epochs, "training epochs")
	fs.Float64Var(&config.LearningRate, "l", config.LearningRate, "learning rate")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket (empty disables upload)")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
