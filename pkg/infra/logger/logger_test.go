package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
}

func TestLogFileName(t *testing.T) {
	assert.Equal(t, "api.log", logFileName("api"))
	assert.Equal(t, "api.log", logFileName(""))
	assert.Equal(t, "etcpasswd.log", logFileName("../../etc/passwd"))
	assert.Equal(t, "scan-api.log", logFileName("Scan-API"))
}

func TestConsoleHook_WritesFormattedEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&ConsoleHook{out: &buf})

	logger.WithField("url", "http://192.168.1.1/login").Info("url scanned")

	assert.Contains(t, buf.String(), `"msg":"url scanned"`)
	assert.Contains(t, buf.String(), `"url":"http://192.168.1.1/login"`)
}
