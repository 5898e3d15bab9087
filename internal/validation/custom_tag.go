package validation

import (
	"github.com/go-playground/validator/v10"
)

const TagRoomCode = "roomcode"

// RoomCodeFunc adapts a room code predicate into a validator.Func.
func RoomCodeFunc(valid func(code string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

// MustRegisterRoomCode installs the roomcode tag on gin's validator. The
// accepted shape is configurable, so it cannot be registered in init.
func MustRegisterRoomCode(valid func(code string) bool) {
	MustRegisterGin(TagRoomCode, RoomCodeFunc(valid))
}
