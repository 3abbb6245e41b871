package pkg

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BindQueryAndValidate binds query parameters into dto and runs its
// validation tags
func BindQueryAndValidate(c *gin.Context, dto interface{}) error {
	if err := c.ShouldBindQuery(dto); err != nil {
		return err
	}
	return validate.Struct(dto)
}
