package config

import (
	"encoding/json"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gestionparc/fleet-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	JWTSecret    string
	Env          string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Env:          os.Getenv("APP_ENV"),
	}
}

// Development reports whether the app runs in development mode. Error
// responses carry the underlying error detail only in that case.
func Development() bool {
	return os.Getenv("APP_ENV") == "development"
}

// ErrorStatus logs the error and writes the standard failure envelope
// {"success":false,"message":...} for the given message and status code.
// The raw error string is only exposed to the caller in development mode.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	resp := models.ErrorResponse{Success: false, Message: message}
	if Development() && err != nil {
		resp.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(resp)
	w.Write(b)
}

// RespondJSON writes the standard success envelope {"success":true,"data":...}
func RespondJSON(w http.ResponseWriter, httpStatusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.SuccessResponse{Success: true, Data: data})
	w.Write(b)
}

// RespondMessage writes {"success":true,"message":...} for mutations that
// have no payload to return.
func RespondMessage(w http.ResponseWriter, httpStatusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.SuccessResponse{Success: true, Message: message})
	w.Write(b)
}

// StatusFromDatabaseError maps the known driver failures to the error
// taxonomy at a single point: duplicate key -> 409, no document -> 404,
// anything else -> 500.
func StatusFromDatabaseError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case err == mongo.ErrNoDocuments:
		return http.StatusNotFound
	case mongo.IsDuplicateKeyError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
