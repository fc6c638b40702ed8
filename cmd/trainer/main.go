package main

import (
	"bytes"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/reviewpulse/internal/artifactstore"
	"github.com/dmitrijs2005/reviewpulse/internal/logging"
	"github.com/dmitrijs2005/reviewpulse/internal/sentiment"
	"github.com/dmitrijs2005/reviewpulse/internal/trainer"
	"github.com/dmitrijs2005/reviewpulse/internal/trainer/config"
)

func main() {

	_ = godotenv.Load()

	if err := run(context.Background(), config.LoadConfig()); err != nil {
		log.Fatalf("%v", err)
	}
}

// run executes one full training pass: load the corpus, fit the vectorizer
// and the classifier, write both artifacts locally and, when a bucket is
// configured, upload them as well.
func run(ctx context.Context, cfg *config.Config) error {

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	samples, dropped, err := trainer.LoadCorpus(cfg.CorpusPath)
	if err != nil {
		return err
	}
	if dropped > 0 {
		logger.Warn(ctx, "dropped incomplete corpus rows", "count", dropped)
	}
	logger.Info(ctx, "corpus loaded", "path", cfg.CorpusPath, "samples", len(samples))

	result, err := trainer.Train(ctx, samples, trainer.Options{
		TestFraction: cfg.TestFraction,
		Seed:         cfg.Seed,
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info(ctx, "training finished",
		"train_size", result.TrainSize,
		"test_size", result.TestSize,
		"accuracy", result.Accuracy,
		"features", result.Vectorizer.NumFeatures(),
	)

	var vecBuf, clfBuf bytes.Buffer
	if err := sentiment.EncodeVectorizer(&vecBuf, result.Vectorizer); err != nil {
		return err
	}
	if err := sentiment.EncodeClassifier(&clfBuf, result.Classifier); err != nil {
		return err
	}

	local := artifactstore.NewLocalStore(cfg.ArtifactDir)
	if err := saveArtifacts(ctx, local, vecBuf.Bytes(), clfBuf.Bytes()); err != nil {
		return err
	}
	logger.Info(ctx, "artifacts written", "dir", cfg.ArtifactDir)

	if cfg.S3Bucket != "" {
		s3store, err := artifactstore.NewS3Store(ctx, artifactstore.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return err
		}
		if err := saveArtifacts(ctx, s3store, vecBuf.Bytes(), clfBuf.Bytes()); err != nil {
			return err
		}
		logger.Info(ctx, "artifacts uploaded", "bucket", cfg.S3Bucket)
	}

	return nil
}

func saveArtifacts(ctx context.Context, store artifactstore.Store, vectorizer, classifier []byte) error {
	if err := store.Save(ctx, artifactstore.VectorizerArtifact, vectorizer); err != nil {
		return err
	}
	return store.Save(ctx, artifactstore.ClassifierArtifact, classifier)
}
