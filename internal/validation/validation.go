package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errNotPlayground = errors.New("gin validator engine is not *validator.Validate")

func MustRegisterGin(tag string, fn validator.Func) {
	if err := RegisterGin(tag, fn); err != nil {
		panic(err)
	}
}

func Register(v *validator.Validate, tag string, fn validator.Func) error {
	return v.RegisterValidation(tag, fn)
}

func ginEngine() (*validator.Validate, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v, nil
	}
	return nil, errNotPlayground
}

func RegisterGin(tag string, fn validator.Func) error {
	v, err := ginEngine()
	if err != nil {
		return err
	}
	return Register(v, tag, fn)
}
