package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Issue("user-1", RoleModerator)
	require.NoError(t, err)

	sess, err := v.Parse("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, RoleModerator, sess.Role)
}

func TestParseRejectsMissingToken(t *testing.T) {
	v := NewVerifier("test-secret")

	_, err := v.Parse("")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = v.Parse("Bearer ")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	v := NewVerifier("test-secret")
	_, err := v.Parse("Bearer not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewVerifier("secret-a")
	token, err := issuer.Issue("user-1", RoleAdmin)
	require.NoError(t, err)

	v := NewVerifier("secret-b")
	_, err = v.Parse("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUnknownRoleDegradesToMember(t *testing.T) {
	v := NewVerifier("test-secret")
	token, err := v.Issue("user-1", "superuser")
	require.NoError(t, err)

	sess, err := v.Parse("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, sess.Role)
}

func TestRolePermissions(t *testing.T) {
	assert.False(t, Session{Role: RoleMember}.CanModerate())
	assert.True(t, Session{Role: RoleModerator}.CanModerate())
	assert.True(t, Session{Role: RoleAdmin}.CanModerate())

	assert.False(t, Session{Role: RoleModerator}.IsAdmin())
	assert.True(t, Session{Role: RoleAdmin}.IsAdmin())
}
