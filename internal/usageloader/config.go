package usageloader

// Config is read once at process start.
type Config struct {
	Project string
	Port    string
	Debug   bool
}

// ConfigFromEnv builds a Config from getenv, normally os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		Project: getenv("GCP_PROJECT"),
		Port:    getenv("PORT"),
		Debug:   getenv("DEBUG") != "" || getenv("debug") != "",
	}
	// 2nd gen runtimes no longer set GCP_PROJECT.
	if cfg.Project == "" {
		cfg.Project = getenv("GOOGLE_CLOUD_PROJECT")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}
