package client

import (
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		err        error
		expected   ErrorClass
	}{
		{
			name:     "network error",
			err:      io.EOF,
			expected: ErrorClassNetwork,
		},
		{
			name:       "client error 404",
			statusCode: 404,
			expected:   ErrorClassClient,
		},
		{
			name:       "client error 400",
			statusCode: 400,
			expected:   ErrorClassClient,
		},
		{
			name:       "rate limit 429",
			statusCode: 429,
			expected:   ErrorClassRateLimit,
		},
		{
			name:       "server error 500",
			statusCode: 500,
			expected:   ErrorClassServer,
		},
		{
			name:       "server error 503",
			statusCode: 503,
			expected:   ErrorClassServer,
		},
		{
			name:       "success 200",
			statusCode: 200,
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classify(tt.statusCode, tt.err)
			if result != tt.expected {
				t.Errorf("classify() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	e := &APIError{
		StatusCode: http.StatusNotFound,
		ErrorClass: ErrorClassClient,
		Message:    "Not Found",
	}

	want := "fusion client error (status 404): Not Found"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	e := &APIError{
		StatusCode: http.StatusInternalServerError,
		ErrorClass: ErrorClassServer,
		Message:    "Internal Server Error",
		Err:        cause,
	}

	if !errors.Is(e, cause) {
		t.Error("Expected APIError to unwrap to its cause")
	}
}
