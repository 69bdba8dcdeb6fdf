package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareModelIn(t *testing.T) {
	t.Run("Return existing model path when model exists", func(t *testing.T) {
		modelDir := t.TempDir()
		modelPath := filepath.Join(modelDir, "Xenova_bert-base-multilingual-cased-ner-hrl")

		err := os.MkdirAll(modelPath, 0750)
		require.NoError(t, err, "Expected directory creation to succeed")

		path, err := PrepareModelIn(modelDir, "Xenova/bert-base-multilingual-cased-ner-hrl", "onnx/model.onnx")
		assert.NoError(t, err, "Expected PrepareModelIn to not return an error for existing model")
		assert.Equal(t, modelPath, path, "Expected path to use sanitized name")
	})

	t.Run("Handle model name without slash", func(t *testing.T) {
		modelDir := t.TempDir()
		expectedPath := filepath.Join(modelDir, "simple-ner")

		err := os.MkdirAll(expectedPath, 0750)
		require.NoError(t, err, "Expected directory creation to succeed")

		path, err := PrepareModelIn(modelDir, "simple-ner", "")
		assert.NoError(t, err, "Expected PrepareModelIn to not return an error")
		assert.Equal(t, expectedPath, path, "Expected path to use model name directly")
	})

	t.Run("Fail on unknown model", func(t *testing.T) {
		modelDir := t.TempDir()

		_, err := PrepareModelIn(modelDir, "mentioner-test/does-not-exist", "onnx/model.onnx")
		if assert.Error(t, err, "Expected download of an unknown model to fail") {
			assert.Contains(t, err.Error(), "failed to", "Expected error to be about download failure")
		}
	})
}

func TestPrepareModel(t *testing.T) {
	t.Run("Uses the default model directory", func(t *testing.T) {
		modelPath := filepath.Join(DefaultModelDir, "test_mock-ner")

		err := os.MkdirAll(modelPath, 0750)
		require.NoError(t, err, "Expected directory creation to succeed")
		defer os.RemoveAll(DefaultModelDir)

		path, err := PrepareModel("test/mock-ner", "")
		assert.NoError(t, err, "Expected PrepareModel to not return an error")
		assert.Equal(t, modelPath, path)
	})
}
