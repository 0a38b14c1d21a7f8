package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	ASR     ASRConfig
	TTS     TTSConfig
	Rewrite RewriteConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NoteActivityTopic  string
	BodyLimitMB        int
}

type ASRConfig struct {
	BaseURL  string
	APIKey   string
	Model    string
	Language string
}

type TTSConfig struct {
	APIKey  string
	VoiceID string
	ModelID string
}

type RewriteConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Referer string
	Title   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NoteActivityTopic:  getEnv("NOTE_ACTIVITY_TOPIC_NAME", "NOTE_ADDED"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 10),
		},
		ASR: ASRConfig{
			BaseURL:  getEnv("ASR_BASE_URL", "https://api.openai.com/v1"),
			APIKey:   getEnv("ASR_API_KEY", ""),
			Model:    getEnv("ASR_MODEL", "whisper-1"),
			Language: getEnv("ASR_LANGUAGE", ""),
		},
		TTS: TTSConfig{
			APIKey:  getEnv("ELEVENLABS_API_KEY", ""),
			VoiceID: getEnv("ELEVENLABS_VOICE_ID", ""),
			ModelID: getEnv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
		},
		Rewrite: RewriteConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			Model:   getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct:free"),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Referer: getEnv("OPENROUTER_REFERER", ""),
			Title:   getEnv("OPENROUTER_TITLE", "voice-agent"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
