package api

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/common/validation"
)

var errInvalidJSON = apperrors.NewBadRequestError("Invalid JSON payload")

// bindBody validates the JSON object body. An empty body is validated as {}.
func bindBody(c *gin.Context, schema *validation.Schema) (*validation.Result, error) {
	input := map[string]interface{}{}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		return nil, errInvalidJSON
	}

	res := schema.Validate(input)
	if !res.Valid {
		return nil, apperrors.NewValidationError(res.Errors)
	}
	return res, nil
}

// bindQuery validates the first value of every query parameter.
func bindQuery(c *gin.Context, schema *validation.Schema) (*validation.Result, error) {
	values := c.Request.URL.Query()
	input := make(map[string]interface{}, len(values))
	for k, v := range values {
		if len(v) > 0 {
			input[k] = v[0]
		}
	}

	res := schema.Validate(input)
	if !res.Valid {
		return nil, apperrors.NewInvalidQueryError(res.Errors)
	}
	return res, nil
}

// pathID validates the :id segment.
func pathID(c *gin.Context) (int64, error) {
	res := validation.IDParam.Validate(map[string]interface{}{"id": c.Param("id")})
	if !res.Valid {
		return 0, apperrors.NewInvalidParamsError(res.Errors)
	}
	id, ok := res.Value["id"].(int64)
	if !ok {
		return 0, apperrors.NewInvalidParamsError([]apperrors.FieldViolation{
			{Field: "id", Message: `"id" must be a safe number`, Type: "number.unsafe"},
		})
	}
	return id, nil
}

func decode(res *validation.Result, out interface{}) error {
	if err := validation.Decode(res.Value, out); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func patchOf(res *validation.Result) *querybuilder.Patch {
	return querybuilder.PatchFrom(res.Value, res.Keys)
}
