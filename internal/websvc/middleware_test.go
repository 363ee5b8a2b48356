package websvc

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeRecorderResponseWriter(t *testing.T) {
	t.Run("implicit_ok", func(t *testing.T) {
		rw := &codeRecorderResponseWriter{
			ResponseWriter: httptest.NewRecorder(),
		}

		_, err := rw.Write([]byte("OK\n"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rw.code)
	})

	t.Run("explicit_code", func(t *testing.T) {
		rw := &codeRecorderResponseWriter{
			ResponseWriter: httptest.NewRecorder(),
		}

		rw.WriteHeader(http.StatusNotFound)
		_, err := rw.Write([]byte("nope\n"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, rw.code)
	})
}
