package common

import (
  "io"
  "os"
  "strings"

  log "github.com/sirupsen/logrus"
  "gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger applies LOG_LEVEL, LOG_FORMAT (text|json) and LOG_FILE to the standard logger.
func SetupLogger() {
  level, err := log.ParseLevel(GetEnvString("LOG_LEVEL"))
  if err != nil {
    level = log.InfoLevel
  }
  log.SetLevel(level)

  if strings.EqualFold(GetEnvString("LOG_FORMAT"), "json") {
    log.SetFormatter(&log.JSONFormatter{
      TimestampFormat: "2006-01-02 15:04:05.000",
    })
  } else {
    log.SetFormatter(&log.TextFormatter{
      FullTimestamp:   true,
      TimestampFormat: "2006-01-02 15:04:05.000",
    })
  }

  if path := GetEnvString("LOG_FILE"); path != "" {
    log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
      Filename:   path,
      MaxSize:    100,
      MaxBackups: 7,
      MaxAge:     30,
      Compress:   true,
    }))
  }
}
