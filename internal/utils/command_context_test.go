package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithWorkingDirectoryStoresNormalizedValue(t *testing.T) {
	accessor := NewCommandContextAccessor()
	enriched := accessor.WithWorkingDirectory(context.Background(), "  /workspace/app ")

	workingDirectory, exists := accessor.WorkingDirectory(enriched)
	require.True(t, exists)
	require.Equal(t, "/workspace/app", workingDirectory)
}

func TestWithWorkingDirectorySkipsEmptyValue(t *testing.T) {
	accessor := NewCommandContextAccessor()
	enriched := accessor.WithWorkingDirectory(context.Background(), "   ")

	_, exists := accessor.WorkingDirectory(enriched)
	require.False(t, exists)
}

func TestWithExecutionFlagsStoresValues(t *testing.T) {
	accessor := NewCommandContextAccessor()
	flags := ExecutionFlags{Verbose: true, VerboseSet: true}

	enriched := accessor.WithExecutionFlags(context.Background(), flags)

	retrieved, exists := accessor.ExecutionFlags(enriched)
	require.True(t, exists)
	require.Equal(t, flags, retrieved)
}

func TestWithExecutionFlagsHandlesMissingContext(t *testing.T) {
	accessor := NewCommandContextAccessor()

	_, exists := accessor.ExecutionFlags(context.Background())
	require.False(t, exists)
}
