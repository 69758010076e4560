// A full bridge session over the line-delimited protocol, the way the
// host shell talks to the data layer.
package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehmetDevlp/notenew/internal/bridge"
)

func TestBridgeSession(t *testing.T) {
	h := bridge.NewHandler(newStore(t))

	// Create a database, read it back, then look up a page that does
	// not exist.
	var in strings.Builder
	fmt.Fprintln(&in, `{"id":1,"op":"db.create","payload":{"title":"Tasks"}}`)
	fmt.Fprintln(&in, `{"id":2,"op":"db.getAll"}`)
	fmt.Fprintln(&in, `{"id":3,"op":"page.get","payload":{"id":"missing"}}`)
	fmt.Fprintln(&in, `{"id":4,"op":"no.such.op"}`)

	var out bytes.Buffer
	require.NoError(t, h.Serve(strings.NewReader(in.String()), &out, nil))

	var responses []bridge.Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp bridge.Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, responses, 4)

	// Creation echoes the database back.
	require.True(t, responses[0].OK)
	created, ok := responses[0].Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tasks", created["title"])
	assert.NotEmpty(t, created["id"])

	// The listing contains the database just created.
	require.True(t, responses[1].OK)
	listing, ok := responses[1].Result.([]any)
	require.True(t, ok)
	require.Len(t, listing, 1)

	// A miss is null with ok, not an error.
	assert.True(t, responses[2].OK)
	assert.Nil(t, responses[2].Result)

	// An unknown op is an error response on the same session.
	require.NotNil(t, responses[3].Error)
	assert.Equal(t, bridge.CodeUnknownOperation, responses[3].Error.Code)
}

func TestBridgeSessionPersistsAcrossServeCalls(t *testing.T) {
	store := newStore(t)
	h := bridge.NewHandler(store)

	var out bytes.Buffer
	require.NoError(t, h.Serve(
		strings.NewReader(`{"id":1,"op":"db.create","payload":{"title":"Durable"}}`+"\n"),
		&out, nil))

	var created bridge.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &created))
	require.True(t, created.OK)
	dbID := created.Result.(map[string]any)["id"].(string)

	// A second session over the same store sees the database.
	out.Reset()
	require.NoError(t, h.Serve(
		strings.NewReader(fmt.Sprintf(`{"id":1,"op":"db.get","payload":{"id":%q}}`+"\n", dbID)),
		&out, nil))

	var got bridge.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.True(t, got.OK)
	require.NotNil(t, got.Result)
	assert.Equal(t, "Durable", got.Result.(map[string]any)["title"])
}
