package logsetup

import (
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/cmstar/go-logx"
	"github.com/cmstar/go-restapi"
	"github.com/cmstar/go-restapi/restapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateForTest(t *testing.T) *restapi.ResourceState {
	t.Helper()
	state, _ := restapitest.NewStateForTest(restapitest.NoOpHandler, "/polls/1?page=2", restapitest.NewStateSetup{})
	return state
}

func TestIP(t *testing.T) {
	state := newStateForTest(t)
	state.UserHost = "10.1.2.3"

	IP.Setup(state)
	assert.Equal(t, []any{"IP", "10.1.2.3"}, state.LogMessage)
}

func TestURL(t *testing.T) {
	state := newStateForTest(t)

	URL.Setup(state)
	assert.Equal(t, []any{"URL", "/polls/1?page=2"}, state.LogMessage)
}

func TestVerb(t *testing.T) {
	state := newStateForTest(t)

	Verb.Setup(state)
	assert.Equal(t, []any{"Verb", "GET"}, state.LogMessage)
}

func TestIdent(t *testing.T) {
	t.Run("collection", func(t *testing.T) {
		state := newStateForTest(t)
		Ident.Setup(state)
		assert.Empty(t, state.LogMessage)
	})

	t.Run("element", func(t *testing.T) {
		state := newStateForTest(t)
		state.Ident = "1"

		Ident.Setup(state)
		assert.Equal(t, []any{"Ident", "1"}, state.LogMessage)
	})
}

func TestUser(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		state := newStateForTest(t)
		User.Setup(state)
		assert.Empty(t, state.LogMessage)
	})

	t.Run("authenticated", func(t *testing.T) {
		state := newStateForTest(t)
		restapi.SetAuthUser(state, "admin")

		User.Setup(state)
		assert.Equal(t, []any{"User", "admin"}, state.LogMessage)
	})
}

func TestError(t *testing.T) {
	t.Run("noError", func(t *testing.T) {
		state := newStateForTest(t)
		Error.Setup(state)
		assert.Empty(t, state.LogMessage)
		assert.Equal(t, logx.Level(0), state.LogLevel)
	})

	t.Run("notFound", func(t *testing.T) {
		state := newStateForTest(t)
		state.Error = restapi.CreateNotFoundError(state, "")

		Error.Setup(state)

		assert.Equal(t, logx.LevelWarn, state.LogLevel)
		require.Len(t, state.LogMessage, 4)
		assert.Equal(t, "ErrorType", state.LogMessage[0])
		assert.Equal(t, "NotFoundError", state.LogMessage[1])
		assert.Equal(t, "Error", state.LogMessage[2])
	})

	t.Run("plainError", func(t *testing.T) {
		state := newStateForTest(t)
		state.Error = errors.New("boom")

		Error.Setup(state)
		assert.Equal(t, logx.LevelError, state.LogLevel)
	})
}

func TestFiles(t *testing.T) {
	t.Run("noMultipart", func(t *testing.T) {
		state := newStateForTest(t)
		Files.Setup(state)
		assert.Empty(t, state.LogMessage)
	})

	t.Run("files", func(t *testing.T) {
		body := new(strings.Builder)
		w := multipart.NewWriter(body)

		fw, err := w.CreateFormFile("b", "b.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte("bb"))
		require.NoError(t, err)

		fw, err = w.CreateFormFile("a", "a.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte("a"))
		require.NoError(t, err)

		require.NoError(t, w.Close())

		state, _ := restapitest.NewStateForTest(restapitest.NoOpHandler, "/polls", restapitest.NewStateSetup{
			HttpMethod:  "POST",
			ContentType: w.FormDataContentType(),
			BodyString:  body.String(),
		})
		require.NoError(t, restapi.LoadForm(state.RawRequest))

		Files.Setup(state)

		// 文件按表单字段名排序输出。
		require.Len(t, state.LogMessage, 12)
		assert.Equal(t, "File0", state.LogMessage[0])
		assert.Equal(t, "a.txt", state.LogMessage[1])
		assert.Equal(t, "Length0", state.LogMessage[2])
		assert.Equal(t, int64(1), state.LogMessage[3])
		assert.Equal(t, "ContentType0", state.LogMessage[4])
		assert.Equal(t, "File1", state.LogMessage[6])
		assert.Equal(t, "b.txt", state.LogMessage[7])
	})
}
