package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

func TestShareCommand_PrintsLink(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "", "share", "--from", "home", "--to", "work")
	require.NoError(t, err)

	want, err := ts.codec.Link(domain.RouteSelection{Origin: &home, Destination: &work})
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
	assert.Zero(t, ts.engine.Calls(), "a plain link needs no route")
}

func TestShareCommand_Text(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "share", "--from", "home", "--to", "work", "--text")
	require.NoError(t, err)

	assert.Contains(t, out, "Route: Home → Work")
	assert.Contains(t, out, "Distance: 14.2 km")
	assert.Contains(t, out, "Duration: 15 min")
	assert.Contains(t, out, "View route: "+testShareBase+"?")
}

func TestShareCommand_Copy(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "", "share", "--from", "home", "--to", "work", "--copy")
	require.NoError(t, err)

	assert.Contains(t, out, "Link copied to clipboard.")
	require.Len(t, ts.actions.copied, 1)
	assert.Equal(t, "Home", ts.actions.copied[0].Origin.Address)
}

func TestShareCommand_CopyWithoutClipboard(t *testing.T) {
	setupTestServices(t)
	shareActions = nil

	_, err := executeCommand(t, "", "share", "--from", "home", "--to", "work", "--copy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard not available")
}

func TestShareCommand_NotConfigured(t *testing.T) {
	setupTestServices(t)
	shareCodec = nil

	_, err := executeCommand(t, "", "share", "--from", "home", "--to", "work")
	assert.ErrorIs(t, err, errShareNotConfigured)
}

func TestOpenCommand_PlansSharedRoute(t *testing.T) {
	ts := setupTestServices(t)
	link, err := ts.codec.Link(domain.RouteSelection{Origin: &home, Destination: &work})
	require.NoError(t, err)

	out, err := executeCommand(t, "", "open", link)
	require.NoError(t, err)

	assert.Contains(t, out, "Home → Work")
	assert.Contains(t, out, domain.ArrivalText)
	assert.Equal(t, 1, ts.engine.Calls())
}

func TestOpenCommand_QueryStringOnly(t *testing.T) {
	ts := setupTestServices(t)
	query, err := ts.codec.Encode(domain.RouteSelection{Origin: &home, Destination: &work})
	require.NoError(t, err)

	out, err := executeCommand(t, "", "open", query)
	require.NoError(t, err)
	assert.Contains(t, out, "Home → Work")
}

func TestOpenCommand_Browser(t *testing.T) {
	ts := setupTestServices(t)
	link, err := ts.codec.Link(domain.RouteSelection{Origin: &home, Destination: &work})
	require.NoError(t, err)

	out, err := executeCommand(t, "", "open", "--browser", link)
	require.NoError(t, err)

	assert.Contains(t, out, "Opened "+link)
	assert.Len(t, ts.actions.opened, 1)
	assert.Zero(t, ts.engine.Calls())
}

func TestOpenCommand_InvalidLink(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "open", "https://wayfinder.test/map?origin=1,2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrShareDecode)
}

func TestOpenCommand_RequiresLink(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "open")
	assert.Error(t, err)
}
