package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("daily", "newsletter")
	require.Len(t, tags, 2)
	require.Equal(t, struct{}{}, tags["daily"])
	require.Empty(t, SimpleTags())
}

func TestEmail_Validate(t *testing.T) {
	t.Parallel()

	var nilEmail *Email
	require.ErrorIs(t, nilEmail.Validate(), ErrNoRecipient)
	require.NoError(t, (&Email{To: []string{"a@b.co"}, Subject: "s", HTML: "h"}).Validate())
}
