package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	bodyLimit = 16 * 1024
	// request log type
	requestType = "request"
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"
	// droppedKey marks requests that ended without any response
	droppedKey = "request_dropped"
	redacted     = "REDACTED"
)

// form fields that never reach the request log
var sensitiveFields = []string{"token", "code", "client_secret"}

// logRecord for Request Log
type logRecord struct {
	RequestID       string
	Timestamp       time.Time
	Duration        time.Duration
	HTTPStatusCode  int
	ErrorStackTrace string
	HTTPMethod      string
	RequestPath     string
	RequestQuery    string
	RequestBody     string
	ClientIP        string
	Dropped         bool
}

func (record *logRecord) fields() []zap.Field {
	fields := []zap.Field{
		zap.String("type", requestType),
		zap.String("request_id", record.RequestID),
		zap.String("method", record.HTTPMethod),
		zap.String("path", record.RequestPath),
		zap.String("query", record.RequestQuery),
		zap.String("body", record.RequestBody),
		zap.String("client_ip", record.ClientIP),
		zap.Int("status", record.HTTPStatusCode),
		zap.Duration("duration", record.Duration),
	}
	if record.Dropped {
		fields = append(fields, zap.Bool("dropped", true))
	}
	if record.ErrorStackTrace != "" {
		fields = append(fields, zap.String("stack", record.ErrorStackTrace))
	}
	return fields
}

// GinLogMiddleware writes one structured log entry per request
func GinLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		record := initLogRecord(c)
		c.Set(RequestIDKey, record.RequestID)

		defer func() {
			// finally print request log even panic
			GetLogger().Info("request", record.fields()...)
		}()

		defer func() {
			if r := recover(); r != nil {
				record.HTTPStatusCode = http.StatusInternalServerError
				record.ErrorStackTrace = string(debug.Stack())
				// throw the panic to the later middlewares
				panic(r)
			}
		}()

		c.Next()

		record.HTTPStatusCode = c.Writer.Status()
		if c.GetBool(droppedKey) {
			// nothing was sent, gin still reports its default status
			record.HTTPStatusCode = 0
			record.Dropped = true
		}
		record.Duration = time.Since(record.Timestamp)
	}
}

// MarkDropped records that the request is ended without a response
func MarkDropped(c *gin.Context) {
	c.Set(droppedKey, true)
}

// RequestID returns the id assigned to the request by GinLogMiddleware
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func initLogRecord(c *gin.Context) *logRecord {
	var requestBodyBytes []byte
	if c.Request.Body != nil {
		var err error
		requestBodyBytes, err = io.ReadAll(c.Request.Body)
		if err != nil {
			GetLogger().Warn("failed to read request body", zap.Error(err))
		}
		// reattach request body for later use
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))
	}
	loggedBody := requestBodyBytes
	if len(loggedBody) > bodyLimit {
		loggedBody = loggedBody[:bodyLimit]
	}

	return &logRecord{
		RequestID:    requestID(c),
		Timestamp:    time.Now(),
		HTTPMethod:   c.Request.Method,
		RequestPath:  c.Request.URL.Path,
		RequestQuery: redact(c.Request.URL.RawQuery),
		RequestBody:  redactBody(c.ContentType(), loggedBody),
		ClientIP:     c.ClientIP(),
	}
}

func requestID(c *gin.Context) string {
	if lc, ok := lambdacontext.FromContext(c.Request.Context()); ok {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

// redactBody masks secrets in a request body according to its content type,
// as returned by gin's Context.ContentType
func redactBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if contentType == gin.MIMEJSON {
		return redactJSON(body)
	}
	return redact(string(body))
}

// redactJSON masks secrets in a JSON object. Anything else, including a
// body cut short by bodyLimit, is dropped entirely.
func redactJSON(body []byte) string {
	var values map[string]any
	if err := json.Unmarshal(body, &values); err != nil {
		return redacted
	}
	for _, field := range sensitiveFields {
		if _, ok := values[field]; ok {
			values[field] = redacted
		}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return redacted
	}
	return string(encoded)
}

// redact masks secrets in a url-encoded string. Anything that does not parse
// as url-encoded is dropped entirely.
func redact(encoded string) string {
	if encoded == "" {
		return ""
	}
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return redacted
	}
	for _, field := range sensitiveFields {
		if values.Has(field) {
			values.Set(field, redacted)
		}
	}
	return values.Encode()
}
