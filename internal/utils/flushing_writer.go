package utils

import "io"

type flusher interface {
	Flush() error
}

type flushingWriter struct {
	writer io.Writer
}

// NewFlushingWriter wraps the writer so that every write is followed by a flush when the writer supports it.
func NewFlushingWriter(writer io.Writer) io.Writer {
	return &flushingWriter{writer: writer}
}

func (writer *flushingWriter) Write(data []byte) (int, error) {
	bytesWritten, writeError := writer.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if flushable, supportsFlush := writer.writer.(flusher); supportsFlush {
		if flushError := flushable.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}
	return bytesWritten, nil
}
