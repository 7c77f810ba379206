package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError errores de campo de un formulario, agregados en un solo mensaje.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "formulario inválido: " + strings.Join(e.Fields, "; ")
}

// fieldMessages nombres visibles de los campos de formulario.
var fieldMessages = map[string]string{
	"LevelID":     "nivel",
	"ProductID":   "producto",
	"StoreID":     "tienda",
	"FromStoreID": "tienda origen",
	"ToStoreID":   "tienda destino",
	"Delta":       "cantidad",
	"Quantity":    "cantidad",
	"Reason":      "motivo",
	"Notes":       "notas",
}

// checkForm valida el struct y traduce cada error de campo a un mensaje.
func checkForm(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		name := fieldMessages[fe.Field()]
		if name == "" {
			name = strings.ToLower(fe.Field())
		}
		out.Fields = append(out.Fields, fieldMessage(name, fe))
	}
	return out
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return name + " es obligatorio"
	case "gt":
		return name + " debe ser mayor que " + fe.Param()
	case "ne":
		return name + " no puede ser " + fe.Param()
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return name + " excede el máximo de " + fe.Param()
	default:
		return name + " no es válido"
	}
}
