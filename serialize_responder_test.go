package restapi

import (
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateWithURL(t *testing.T, target string) *ResourceState {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	return NewState(httptest.NewRecorder(), req, nil)
}

func readBody(t *testing.T, state *ResourceState) string {
	t.Helper()
	if state.ResponseBody == nil {
		return ""
	}
	data, err := io.ReadAll(state.ResponseBody)
	require.NoError(t, err)
	return string(data)
}

func pollEntities(num int) []Entity {
	entities := make([]Entity, num)
	for i := 0; i < num; i++ {
		entities[i] = Entity{Model: "poll", Pk: i + 1}
	}
	return entities
}

func TestSerializeResponder_Mimetype(t *testing.T) {
	assert.Equal(t, ContentTypeJson, NewJsonResponder().Mimetype())
	assert.Equal(t, ContentTypeXml, NewXmlResponder().Mimetype())

	custom := &SerializeResponder{Format: FormatJson, ContentType: "text/custom"}
	assert.Equal(t, "text/custom", custom.Mimetype())

	unknown := &SerializeResponder{Format: "no-such-format"}
	assert.Equal(t, ContentTypeNone, unknown.Mimetype())
}

func TestSerializeResponder_WriteElement(t *testing.T) {
	state := newStateWithURL(t, "/polls/1")
	NewJsonResponder().WriteElement(state, Entity{Model: "poll", Pk: 1})

	assert.Equal(t, 0, state.ResponseStatus)
	assert.Equal(t, ContentTypeJson, state.ResponseContentType)
	assert.Equal(t, `[{"pk":1,"model":"poll","fields":{}}]`, readBody(t, state))
}

func TestSerializeResponder_WriteList_paginate(t *testing.T) {
	responder := &SerializeResponder{Format: FormatJson, PaginateBy: 2}

	t.Run("defaultFirstPage", func(t *testing.T) {
		state := newStateWithURL(t, "/polls")
		responder.WriteList(state, pollEntities(3))

		assert.Equal(t, 0, state.ResponseStatus)
		assert.Equal(t, `[{"pk":1,"model":"poll","fields":{}},{"pk":2,"model":"poll","fields":{}}]`, readBody(t, state))
	})

	t.Run("lastPartialPage", func(t *testing.T) {
		state := newStateWithURL(t, "/polls?page=2")
		responder.WriteList(state, pollEntities(3))

		assert.Equal(t, `[{"pk":3,"model":"poll","fields":{}}]`, readBody(t, state))
	})

	t.Run("pageOutOfRange", func(t *testing.T) {
		state := newStateWithURL(t, "/polls?page=3")
		responder.WriteList(state, pollEntities(3))

		assert.Equal(t, 404, state.ResponseStatus)
	})

	t.Run("pageNotNumber", func(t *testing.T) {
		state := newStateWithURL(t, "/polls?page=x")
		responder.WriteList(state, pollEntities(3))

		assert.Equal(t, 404, state.ResponseStatus)
	})

	t.Run("pageZero", func(t *testing.T) {
		state := newStateWithURL(t, "/polls?page=0")
		responder.WriteList(state, pollEntities(3))

		assert.Equal(t, 404, state.ResponseStatus)
	})

	t.Run("emptyNotAllowed", func(t *testing.T) {
		state := newStateWithURL(t, "/polls")
		responder.WriteList(state, nil)

		assert.Equal(t, 404, state.ResponseStatus)
	})

	t.Run("emptyAllowed", func(t *testing.T) {
		allowEmpty := &SerializeResponder{Format: FormatJson, PaginateBy: 2, AllowEmpty: true}

		state := newStateWithURL(t, "/polls")
		allowEmpty.WriteList(state, nil)

		assert.Equal(t, 0, state.ResponseStatus)
		assert.Equal(t, "[]", readBody(t, state))
	})
}

func TestSerializeResponder_WriteList_noPagination(t *testing.T) {
	// 不分页时 page 参数被忽略，输出全部元素。
	responder := NewJsonResponder()
	state := newStateWithURL(t, "/polls?page="+strconv.Itoa(99))
	responder.WriteList(state, pollEntities(3))

	assert.Equal(t, 0, state.ResponseStatus)
	assert.Equal(t,
		`[{"pk":1,"model":"poll","fields":{}},{"pk":2,"model":"poll","fields":{}},{"pk":3,"model":"poll","fields":{}}]`,
		readBody(t, state))
}

func TestSerializeResponder_WriteError(t *testing.T) {
	t.Run("withoutErrors", func(t *testing.T) {
		state := newStateWithURL(t, "/polls")
		NewJsonResponder().WriteError(state, 404, nil)

		assert.Equal(t, 404, state.ResponseStatus)
		assert.Equal(t, ContentTypeJson, state.ResponseContentType)
		assert.Equal(t, "Error 404", readBody(t, state))
	})

	t.Run("withErrors", func(t *testing.T) {
		errs := make(ValidationErrors)
		errs.Add("question", "required")
		errs.Add("question", "too long")
		errs.Add("votes", "not a number")

		state := newStateWithURL(t, "/polls")
		NewJsonResponder().WriteError(state, 400, errs)

		assert.Equal(t, 400, state.ResponseStatus)
		want := "Error 400\n\nErrors:\n" +
			"* question\n  * required\n  * too long\n" +
			"* votes\n  * not a number\n"
		assert.Equal(t, want, readBody(t, state))
	})
}

func TestSerializeResponder_ExposeFields(t *testing.T) {
	responder := &SerializeResponder{Format: FormatJson, ExposeFields: []string{"question"}}

	state := newStateWithURL(t, "/polls/1")
	responder.WriteElement(state, Entity{
		Model: "poll",
		Pk:    1,
		Fields: []EntityField{
			{Name: "question", Value: "what"},
			{Name: "secret", Value: "hidden"},
		},
	})

	assert.Equal(t, `[{"pk":1,"model":"poll","fields":{"question":"what"}}]`, readBody(t, state))
}

func TestSerializeResponder_unknownFormat(t *testing.T) {
	state := newStateWithURL(t, "/polls")
	assert.Panics(t, func() {
		NewSerializeResponder("no-such-format").WriteElement(state, Entity{})
	})
}
