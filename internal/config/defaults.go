package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "mock"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 512
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.TimeoutSecs == 0 {
		cfg.Embedding.TimeoutSecs = 30
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1024
	}
	if cfg.Synthesis.Provider == "" {
		cfg.Synthesis.Provider = "mock"
	}
	if cfg.Synthesis.APIKeyEnv == "" {
		cfg.Synthesis.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Synthesis.Model == "" {
		cfg.Synthesis.Model = "gpt-4o-mini"
	}
	if cfg.Synthesis.TimeoutSecs == 0 {
		cfg.Synthesis.TimeoutSecs = 60
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Chunking.MinChars == 0 {
		cfg.Chunking.MinChars = 200
	}
	if cfg.Chunking.EmbedWorkers == 0 {
		cfg.Chunking.EmbedWorkers = 4
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".pdf", ".docx", ".xlsx", ".txt", ".md"}
	}
}
