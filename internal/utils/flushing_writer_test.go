package utils_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoaudit/internal/utils"
)

func TestFlushingWriterFlushesBufferedDestination(testInstance *testing.T) {
	var backingBuffer bytes.Buffer
	bufferedDestination := bufio.NewWriterSize(&backingBuffer, 1024)

	flushingWriter := utils.NewFlushingWriter(bufferedDestination)
	writtenPayload := []byte("Warning: directory not found, skipping: /srv/missing\n")
	bytesWritten, writeError := flushingWriter.Write(writtenPayload)
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(writtenPayload), bytesWritten)
	require.Equal(testInstance, string(writtenPayload), backingBuffer.String())
}

func TestFlushingWriterReturnsExistingWrapper(testInstance *testing.T) {
	wrappedWriter := utils.NewFlushingWriter(&bytes.Buffer{})
	require.Same(testInstance, wrappedWriter, utils.NewFlushingWriter(wrappedWriter))
}

func TestFlushingWriterRejectsNilDestination(testInstance *testing.T) {
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}
