package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"semrush-go/pkg/utils"
)

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s]+`)
	secretPattern = regexp.MustCompile(`(?i)(key|token|secret)[=:]\s*[a-zA-Z0-9]+`)
)

// SecurityLogger provides methods to safely log API keys and request URLs
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger wraps the given logger, or the global one when nil
func NewSecurityLogger(base *Logger) *SecurityLogger {
	if base == nil {
		base = GetLogger()
	}
	return &SecurityLogger{Logger: base}
}

// MaskAPIKey replaces an API key with a short, stable fingerprint
func (sl *SecurityLogger) MaskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	return "api-key#" + sl.GenerateHash(apiKey)[:8]
}

// MaskRequestURL drops the key parameter from a provider request URL and
// appends the request hash so log lines can be correlated with cache keys.
func (sl *SecurityLogger) MaskRequestURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "request#" + utils.CalculateRequestHashShort(rawURL)
	}

	redacted := utils.RedactQueryParam(rawURL, "key")
	return fmt.Sprintf("%s#%s", redacted, utils.CalculateRequestHashShort(redacted))
}

// MaskSensitiveData masks secrets and URLs found in a field map
func (sl *SecurityLogger) MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))

	for key, value := range data {
		lowerKey := strings.ToLower(key)
		str, isString := value.(string)

		switch {
		case isString && (strings.Contains(lowerKey, "key") ||
			strings.Contains(lowerKey, "token") ||
			strings.Contains(lowerKey, "secret") ||
			strings.Contains(lowerKey, "password")):
			masked[key] = sl.MaskAPIKey(str)
		case isString && strings.Contains(lowerKey, "url"):
			masked[key] = sl.MaskRequestURL(str)
		default:
			masked[key] = value
		}
	}

	return masked
}

// MaskLogMessage masks URLs and inline secrets in free-form messages
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	masked := urlPattern.ReplaceAllStringFunc(message, sl.MaskRequestURL)
	return secretPattern.ReplaceAllString(masked, "${1}=***")
}

// GenerateHash returns a hex SHA-256 prefix of data
func (sl *SecurityLogger) GenerateHash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:8])
}

// SafeInfo logs info with automatic sensitive data masking
func (sl *SecurityLogger) SafeInfo(msg string, fields map[string]interface{}) {
	sl.masked(fields).Info(sl.MaskLogMessage(msg))
}

// SafeWarn logs a warning with automatic sensitive data masking
func (sl *SecurityLogger) SafeWarn(msg string, fields map[string]interface{}) {
	sl.masked(fields).Warn(sl.MaskLogMessage(msg))
}

// SafeDebug logs debug with automatic sensitive data masking
func (sl *SecurityLogger) SafeDebug(msg string, fields map[string]interface{}) {
	sl.masked(fields).Debug(sl.MaskLogMessage(msg))
}

// SafeError logs an error with automatic sensitive data masking
func (sl *SecurityLogger) SafeError(msg string, err error, fields map[string]interface{}) {
	l := sl.masked(fields)
	if err != nil {
		l = l.WithField("error", sl.MaskLogMessage(err.Error()))
	}
	l.Error(sl.MaskLogMessage(msg))
}

func (sl *SecurityLogger) masked(fields map[string]interface{}) *Logger {
	if len(fields) == 0 {
		return sl.Logger
	}
	return sl.Logger.WithFields(sl.MaskSensitiveData(fields))
}

var (
	securityLoggerInstance *SecurityLogger
	securityOnce           sync.Once
)

// GetSecurityLogger returns a singleton security logger over the global logger
func GetSecurityLogger() *SecurityLogger {
	securityOnce.Do(func() {
		securityLoggerInstance = NewSecurityLogger(nil)
	})
	return securityLoggerInstance
}
