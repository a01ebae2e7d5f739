/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// QualityOption is one entry of a quality preset table, in menu order.
type QualityOption struct {
	Key   string
	Label string
}

// Config holds the process-wide static settings, loaded once at startup.
type Config struct {
	ApiId   int32
	ApiHash string
	Token   string

	DownloadsDir string
	MaxFileSize  int64 // bytes, outbound attachment ceiling
	MaxDuration  int   // seconds, video requests above this are rejected

	OwnerId  int64
	LoggerId int64

	CookiesFile string // optional, for age-gated videos
	SaavnApiUrl string
	MongoUri    string

	VideoQualities []QualityOption
	AudioQualities []QualityOption
}

var Conf *Config

const (
	defaultDownloadsDir = "./downloads"
	defaultMaxFileSize  = 50 * 1024 * 1024 // Telegram bot attachment ceiling
	defaultMaxDuration  = 600
	defaultSaavnApiUrl  = "https://saavn.dev"
)

// LoadConfig reads the .env file (if present) and the environment into Conf.
func LoadConfig() error {
	_ = godotenv.Load()

	apiId, err := strconv.ParseInt(os.Getenv("API_ID"), 10, 32)
	if err != nil {
		return errors.New("API_ID is missing or not a number")
	}

	apiHash := os.Getenv("API_HASH")
	if apiHash == "" {
		return errors.New("API_HASH is missing")
	}

	token := os.Getenv("TOKEN")
	if token == "" {
		return errors.New("TOKEN is missing")
	}

	conf := &Config{
		ApiId:        int32(apiId),
		ApiHash:      apiHash,
		Token:        token,
		DownloadsDir: getEnvOr("DOWNLOADS_DIR", defaultDownloadsDir),
		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", defaultMaxFileSize),
		MaxDuration:  int(getEnvInt64("MAX_DURATION", defaultMaxDuration)),
		OwnerId:      getEnvInt64("OWNER_ID", 0),
		LoggerId:     getEnvInt64("LOGGER_ID", 0),
		CookiesFile:  os.Getenv("COOKIES_FILE"),
		SaavnApiUrl:  strings.TrimRight(getEnvOr("SAAVN_API_URL", defaultSaavnApiUrl), "/"),
		MongoUri:     os.Getenv("MONGO_URI"),

		VideoQualities: []QualityOption{
			{Key: "best", Label: "Best Quality"},
			{Key: "1080", Label: "1080p"},
			{Key: "720", Label: "720p"},
			{Key: "480", Label: "480p"},
			{Key: "audio", Label: "Audio Only (MP3)"},
		},
		// The 160/96 tiers are declared but unused: the fetch path always
		// requests best audio and transcodes to one fixed bitrate.
		AudioQualities: []QualityOption{
			{Key: "320", Label: "320kbps"},
			{Key: "160", Label: "160kbps"},
			{Key: "96", Label: "96kbps"},
		},
	}

	if err := os.MkdirAll(conf.DownloadsDir, 0755); err != nil {
		return err
	}

	Conf = conf
	return nil
}

func getEnvOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
