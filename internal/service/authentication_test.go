package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
}

func TestHashPassword(t *testing.T) {
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.Error(t, ComparePassword(hash, "wrong"))
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	auth := NewAuth("testsecret", time.Minute)
	require.Equal(t, time.Minute, auth.TTL())

	tok, err := auth.IssueAccessToken(5)
	require.NoError(t, err)

	claims, err := auth.VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, "5", claims.Subject)
}

func TestVerifyAccessTokenRejectsBadTokens(t *testing.T) {
	t.Cleanup(restoreGlobals)
	auth := NewAuth("testsecret", time.Minute)
	tok, err := auth.IssueAccessToken(1)
	require.NoError(t, err)

	// 其他密鑰簽發
	_, err = NewAuth("other", time.Minute).VerifyAccessToken(tok)
	require.Error(t, err)

	// 被竄改
	_, err = auth.VerifyAccessToken(tok + "x")
	require.Error(t, err)

	// 格式錯誤
	_, err = auth.VerifyAccessToken("not-a-token")
	require.Error(t, err)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	t.Cleanup(restoreGlobals)
	auth := NewAuth("testsecret", time.Hour)

	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := auth.IssueAccessToken(1)
	require.NoError(t, err)
	timeNow = time.Now

	_, err = auth.VerifyAccessToken(tok)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyAccessTokenRejectsWrongMethod(t *testing.T) {
	t.Cleanup(restoreGlobals)
	auth := NewAuth("testsecret", time.Minute)

	// alg=none 令牌
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{UserID: 1})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(tok)
	require.Error(t, err)
}
