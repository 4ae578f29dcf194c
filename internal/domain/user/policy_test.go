package user

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCan(t *testing.T) {
	admin := &User{ID: 1, IsAdmin: true}
	regular := &User{ID: 2}
	var nobody *User

	require.True(t, admin.Can(ActionViewProducts))
	require.True(t, admin.Can(ActionManageProducts))

	require.True(t, regular.Can(ActionViewProducts))
	require.False(t, regular.Can(ActionManageProducts))

	require.False(t, nobody.Can(ActionViewProducts))
	require.False(t, nobody.Can(ActionManageProducts))

	require.False(t, admin.Can(Action("unknown")))
}
