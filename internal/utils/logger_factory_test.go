package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/devrun/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant   = "supported_log_level_%s_format_%s"
	testLoggerFactoryCaseUnsupportedLevelConstant  = "unsupported_log_level"
	testLoggerFactoryCaseUnsupportedFormatConstant = "unsupported_log_format"
	testLoggerFactorySubtestTemplateConstant       = "%d_%s"
	testInvalidLogLevelConstant                    = "invalid"
	testInvalidLogFormatConstant                   = "invalid"
	testLogMessageConstant                         = "logger_factory_test_message"
	testConsoleMessageConstant                     = "Running bun install"
)

func captureStandardError(testInstance *testing.T, emit func()) string {
	testInstance.Helper()

	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)

	originalStderr := os.Stderr
	os.Stderr = pipeWriter
	defer func() {
		os.Stderr = originalStderr
	}()

	emit()

	require.NoError(testInstance, pipeWriter.Close())
	capturedOutput, readError := io.ReadAll(pipeReader)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, pipeReader.Close())
	return string(bytes.TrimSpace(capturedOutput))
}

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatConsole,
			expectStructuredLog: false,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			loggerFactory := utils.NewLoggerFactory()

			var logger *zap.Logger
			var creationError error
			capturedOutput := captureStandardError(testInstance, func() {
				logger, creationError = loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
				if creationError != nil {
					return
				}
				logger.Info(testLogMessageConstant)
				require.NoError(testInstance, utils.SyncLogger(logger))
			})

			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				require.Empty(testInstance, capturedOutput)
				return
			}

			require.NoError(testInstance, creationError)
			require.Contains(testInstance, capturedOutput, testLogMessageConstant)
			require.Equal(testInstance, testCase.expectStructuredLog, json.Valid([]byte(capturedOutput)))
		})
	}
}

func TestLoggerFactoryCreateLoggerOutputsConsoleLoggerPrintsBareMessages(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()

	capturedOutput := captureStandardError(testInstance, func() {
		outputs, creationError := loggerFactory.CreateLoggerOutputs(utils.LogLevelError, utils.LogFormatConsole)
		require.NoError(testInstance, creationError)
		require.NotNil(testInstance, outputs.DiagnosticLogger)
		require.NotNil(testInstance, outputs.ConsoleLogger)

		outputs.DiagnosticLogger.Info(testLogMessageConstant)
		outputs.ConsoleLogger.Info(testConsoleMessageConstant)
		require.NoError(testInstance, utils.SyncLogger(outputs.DiagnosticLogger))
		require.NoError(testInstance, utils.SyncLogger(outputs.ConsoleLogger))
	})

	require.Equal(testInstance, testConsoleMessageConstant, capturedOutput)
}

func TestLoggerFactoryCreateLoggerOutputsRejectsUnknownLevel(testInstance *testing.T) {
	outputs, creationError := utils.NewLoggerFactory().CreateLoggerOutputs(utils.LogLevel(testInvalidLogLevelConstant), utils.LogFormatConsole)
	require.Error(testInstance, creationError)
	require.Nil(testInstance, outputs.DiagnosticLogger)
	require.Nil(testInstance, outputs.ConsoleLogger)
}

func TestNormalizeLoggingValues(testInstance *testing.T) {
	require.Equal(testInstance, utils.LogLevelWarn, utils.NormalizeLogLevel("  WARN "))
	require.Equal(testInstance, utils.LogFormatConsole, utils.NormalizeLogFormat("Console"))
}
