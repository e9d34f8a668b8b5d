package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := GenerateJWT(42, "scorer", "s3cret", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateJWT(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "scorer", claims.Role)
	assert.Equal(t, "crease", claims.Issuer)
}

func TestValidateRejects(t *testing.T) {
	good, err := GenerateJWT(42, "scorer", "s3cret", time.Minute)
	require.NoError(t, err)
	expired, err := GenerateJWT(42, "scorer", "s3cret", -time.Minute)
	require.NoError(t, err)
	anonymous, err := GenerateJWT(0, "scorer", "s3cret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(good, "other")
	assert.EqualError(t, err, "token signature is invalid")
	_, err = ValidateJWT(expired, "s3cret")
	assert.EqualError(t, err, "token has expired")
	_, err = ValidateJWT(anonymous, "s3cret")
	assert.Error(t, err)
	_, err = ValidateJWT("", "s3cret")
	assert.Error(t, err)
	_, err = ValidateJWT(good, "")
	assert.Error(t, err)
	_, err = ValidateJWT("garbage", "s3cret")
	assert.Error(t, err)
}
