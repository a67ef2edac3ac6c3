package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"anoa.com/skinannotator/pkg/apperror"
	"anoa.com/skinannotator/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DecodeStrictJSON decodes the body into dest, rejecting unknown keys, then
// runs the binding validator. An empty body decodes to the zero value.
func DecodeStrictJSON(c *gin.Context, dest interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error())
	}

	if err := binding.Validator.ValidateStruct(dest); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err))
	}
	return nil
}

// ParseInt64Param reads a numeric path parameter.
func ParseInt64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", apperror.ErrInvalidInput, name)
	}
	return id, nil
}
