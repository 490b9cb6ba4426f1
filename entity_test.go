package restapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"ID", "id"},
		{"Question", "question"},
		{"PubDate", "pub_date"},
		{"PollID", "poll_id"},
		{"HTTPStatus", "http_status"},
		{"already_snake", "already_snake"},
		{"A", "a"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, SnakeName(c.in))
		})
	}
}

func TestMakeEntity(t *testing.T) {
	type Poll struct {
		ID       int64
		Question string
		PubDate  time.Time
	}

	pubDate := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	poll := Poll{ID: 3, Question: "what", PubDate: pubDate}

	t.Run("struct", func(t *testing.T) {
		e := MakeEntity(poll, "ID")

		assert.Equal(t, "poll", e.Model)
		assert.Equal(t, int64(3), e.Pk)
		require.Len(t, e.Fields, 2)
		assert.Equal(t, EntityField{Name: "question", Value: "what"}, e.Fields[0])
		assert.Equal(t, EntityField{Name: "pub_date", Value: pubDate}, e.Fields[1])
	})

	t.Run("pointer", func(t *testing.T) {
		e := MakeEntity(&poll, "ID")
		assert.Equal(t, int64(3), e.Pk)
	})

	t.Run("embedded", func(t *testing.T) {
		type Base struct {
			ID int
		}
		type Item struct {
			Base
			Name string
		}

		e := MakeEntity(Item{Base: Base{ID: 7}, Name: "n"}, "ID")
		assert.Equal(t, 7, e.Pk)
		require.Len(t, e.Fields, 1)
		assert.Equal(t, "name", e.Fields[0].Name)
	})

	t.Run("unexportedFieldSkipped", func(t *testing.T) {
		type withHidden struct {
			ID     int
			hidden string
			Shown  string
		}

		e := MakeEntity(withHidden{ID: 1, hidden: "x", Shown: "y"}, "ID")
		require.Len(t, e.Fields, 1)
		assert.Equal(t, "shown", e.Fields[0].Name)
	})

	t.Run("notStruct", func(t *testing.T) {
		assert.Panics(t, func() {
			MakeEntity(42, "ID")
		})
	})
}

func TestEntity_MarshalJSON(t *testing.T) {
	e := Entity{
		Model: "poll",
		Pk:    1,
		Fields: []EntityField{
			{Name: "question", Value: "what"},
			{Name: "votes", Value: 2},
			{Name: "none", Value: nil},
		},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	// 输出顺序固定为 pk 、 model 、 fields ，且字段保持声明顺序。
	assert.Equal(t, `{"pk":1,"model":"poll","fields":{"question":"what","votes":2,"none":null}}`, string(data))
}

func TestEntity_MarshalJSON_empty(t *testing.T) {
	data, err := json.Marshal(Entity{Model: "poll", Pk: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"pk":1,"model":"poll","fields":{}}`, string(data))
}
