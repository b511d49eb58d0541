package config

// GeminiConfig содержит настройки сервиса суммаризации.
// Пустой APIKey не мешает запуску: запрос суммаризации вернет ошибку конфигурации.
type GeminiConfig struct {
	APIKey          string  `yaml:"api_key" env:"GEMINI_API_KEY" env-default:""`
	Model           string  `yaml:"model" env:"MEMOS_GEMINI_MODEL" env-default:"gemini-2.0-flash-001"`
	Endpoint        string  `yaml:"endpoint" env:"MEMOS_GEMINI_ENDPOINT" env-default:"https://generativelanguage.googleapis.com/"`
	APIVersion      string  `yaml:"api_version" env:"MEMOS_GEMINI_API_VERSION" env-default:"v1beta"`
	MaxOutputTokens int     `yaml:"max_output_tokens" env:"MEMOS_GEMINI_MAX_OUTPUT_TOKENS" env-default:"500"`
	Temperature     float64 `yaml:"temperature" env:"MEMOS_GEMINI_TEMPERATURE" env-default:"0.3"`
}
