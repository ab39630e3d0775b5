package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Paths.Data == "" {
		cfg.Paths.Data = "/usr/local/var/osusume/data/reviews.csv"
	}
	if cfg.Paths.Artifacts == "" {
		cfg.Paths.Artifacts = "/usr/local/var/osusume/artifacts"
	}
	if cfg.Paths.Logs == "" {
		cfg.Paths.Logs = "/usr/local/var/osusume/logs"
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = "food_ranker"
	}
	if cfg.Model.Version == "" {
		cfg.Model.Version = "1"
	}
	if cfg.Training.TFIDFMaxFeatures == 0 {
		cfg.Training.TFIDFMaxFeatures = 1000
	}
	if cfg.Training.NClusters == 0 {
		cfg.Training.NClusters = 5
	}
	if cfg.Training.Seed == 0 {
		cfg.Training.Seed = 42
	}
	if cfg.Training.Booster.Rounds == 0 {
		cfg.Training.Booster.Rounds = 50
	}
	if cfg.Training.Booster.LearningRate == 0 {
		cfg.Training.Booster.LearningRate = 0.1
	}
	if cfg.Training.Booster.MaxDepth == 0 {
		cfg.Training.Booster.MaxDepth = 3
	}
	if cfg.Scoring.SimilarityWeight == 0 {
		cfg.Scoring.SimilarityWeight = 0.5
	}
	if cfg.Scoring.RatingWeight == 0 {
		cfg.Scoring.RatingWeight = 0.2
	}
	if cfg.Scoring.RecencyWeight == 0 {
		cfg.Scoring.RecencyWeight = 0.1
	}
	if cfg.Scoring.CategoryWeight == 0 {
		cfg.Scoring.CategoryWeight = 0.2
	}
	if cfg.Scoring.TopK == 0 {
		cfg.Scoring.TopK = 5
	}
}
