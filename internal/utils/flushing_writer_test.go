package utils_test

import (
	"bufio"
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devrun/internal/utils"
)

const (
	testProgressLineConstant = "Running bun install...\n"
)

func TestFlushingWriterFlushesBufferedWriters(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriter(destination)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := flushingWriter.Write([]byte(testProgressLineConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(testProgressLineConstant), bytesWritten)
	require.Equal(testInstance, testProgressLineConstant, destination.String())
}

func TestFlushingWriterWrapsOnce(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	flushingWriter := utils.NewFlushingWriter(destination)
	require.Same(testInstance, flushingWriter, utils.NewFlushingWriter(flushingWriter))
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}

func TestFlushingWriterUnwrap(testInstance *testing.T) {
	temporaryFile, createError := os.CreateTemp(testInstance.TempDir(), "progress")
	require.NoError(testInstance, createError)
	testInstance.Cleanup(func() {
		require.NoError(testInstance, temporaryFile.Close())
	})

	fileWriter, isFlushingWriter := utils.NewFlushingWriter(temporaryFile).(*utils.FlushingWriter)
	require.True(testInstance, isFlushingWriter)
	require.Same(testInstance, temporaryFile, fileWriter.Unwrap())
}
