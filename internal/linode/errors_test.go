package linode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/linode/linodego"
	"github.com/stretchr/testify/assert"

	"github.com/chris-milsted/lkeup/internal/model"
)

func apiError(code int) error {
	return &linodego.Error{Code: code, Message: "test"}
}

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(apiError(404)))
	assert.False(t, IsNotFound(apiError(500)))
	assert.False(t, IsNotFound(errors.New("plain")))

	assert.True(t, IsUnauthorized(apiError(401)))
	assert.True(t, IsUnauthorized(apiError(403)))
	assert.False(t, IsUnauthorized(apiError(404)))

	assert.True(t, IsRateLimited(apiError(429)))
	assert.False(t, IsRateLimited(apiError(500)))

	assert.True(t, IsConflict(apiError(409)))
	assert.False(t, IsConflict(apiError(404)))
}

func TestStatusPredicates_SeeThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("delete cluster: %w", apiError(404))
	assert.True(t, IsNotFound(wrapped))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", errors.New("connection reset"), true},
		{"rate limited", apiError(429), true},
		{"server error", apiError(500), true},
		{"bad gateway", apiError(502), true},
		{"bad request", apiError(400), false},
		{"unauthorized", apiError(401), false},
		{"not found", apiError(404), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.NoError(t, classify("op", nil))

	err := classify("create cluster", apiError(401))
	assert.True(t, model.IsAuth(err))
	assert.Contains(t, err.Error(), "create cluster")

	err = classify("create cluster", apiError(500))
	assert.True(t, model.IsProvider(err))
	assert.False(t, model.IsAuth(err))
}
