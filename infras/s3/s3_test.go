package s3

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeETag(t *testing.T) {
	assert.Equal(t, "abc123", normalizeETag(aws.String(`"abc123"`)))
	assert.Equal(t, "abc123", normalizeETag(aws.String("abc123")))
	assert.Equal(t, "", normalizeETag(nil))
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no such key", err: fmt.Errorf("get: %w", &types.NoSuchKey{}), want: true},
		{name: "typed not found", err: &types.NotFound{}, want: true},
		{name: "generic 404 code", err: &smithy.GenericAPIError{Code: "NotFound"}, want: true},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: false},
		{name: "network", err: errors.New("dial tcp: refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}
