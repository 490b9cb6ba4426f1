package restapi

import (
	"errors"
	"testing"

	"github.com/cmstar/go-errx"
	"github.com/cmstar/go-logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_AsText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ValidationErrors{}.AsText())
	})

	t.Run("sorted", func(t *testing.T) {
		errs := make(ValidationErrors)
		errs.Add("votes", "not a number")
		errs.Add("question", "required")
		errs.Add("question", "too long")

		want := "* question\n  * required\n  * too long\n* votes\n  * not a number\n"
		assert.Equal(t, want, errs.AsText())
	})
}

func TestCreateResourceError(t *testing.T) {
	t.Run("messageOnly", func(t *testing.T) {
		e := CreateResourceError(nil, nil, "m%d", 1)
		assert.Equal(t, "m1", e.Error())
	})

	t.Run("withCause", func(t *testing.T) {
		cause := errors.New("inner")
		e := CreateResourceError(nil, cause, "outer")
		assert.Equal(t, "outer:: inner", e.Error())
	})

	t.Run("causeOnly", func(t *testing.T) {
		e := CreateResourceError(nil, errors.New("inner"), "")
		assert.Equal(t, "inner", e.Error())
	})
}

func TestPanicResourceError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)

		e, ok := r.(ResourceError)
		require.True(t, ok)
		assert.Equal(t, "boom", e.Error())
	}()

	PanicResourceError(nil, nil, "boom")
}

func TestCreateValidationError(t *testing.T) {
	errs := make(ValidationErrors)
	errs.Add("question", "required")

	e := CreateValidationError(nil, errs)
	assert.Equal(t, "validation error", e.Error())
	assert.Equal(t, errs, e.Errors)
}

func TestCreateNotFoundError(t *testing.T) {
	assert.Equal(t, "not found", CreateNotFoundError(nil, "").Error())
	assert.Equal(t, "no such poll", CreateNotFoundError(nil, "no such poll").Error())
}

func TestCreateMethodNotAllowedError(t *testing.T) {
	e := CreateMethodNotAllowedError(nil, []string{"GET", "POST"})
	assert.Equal(t, []string{"GET", "POST"}, e.Methods)
	assert.Contains(t, e.Error(), "GET, POST")
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		name         string
		err          error
		wantLevel    logx.Level
		wantTypeName string
	}{
		{"nil", nil, logx.LevelInfo, ""},
		{"BizError", errx.NewBizError(1, "m", nil), logx.LevelWarn, "BizError"},
		{"NotFoundError", CreateNotFoundError(nil, ""), logx.LevelWarn, "NotFoundError"},
		{"MethodNotAllowedError", CreateMethodNotAllowedError(nil, nil), logx.LevelWarn, "MethodNotAllowedError"},
		{"BadRequestError", CreateBadRequestError(nil, nil, "m"), logx.LevelError, "BadRequestError"},
		{"ResourceError", CreateResourceError(nil, nil, "m"), logx.LevelFatal, "ResourceError"},
		{"plain", errors.New("m"), logx.LevelError, "errorString"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			level, typeName, description := DescribeError(c.err)

			assert.Equal(t, c.wantLevel, level)
			assert.Equal(t, c.wantTypeName, typeName)

			if c.err == nil {
				assert.Empty(t, description)
			} else {
				assert.Contains(t, description, "m")
			}
		})
	}
}
