// Package validation valida DTOs de entrada com go-playground/validator.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/rastreio-doces-api/pkg/cnpj"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Erros usam o nome do campo JSON, que é o que o cliente enviou.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return cnpj.Validate(fl.Field().String()) == nil
	})
}

// Error lista os campos reprovados, no formato "campo" ou "campo:regra".
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "campos inválidos: " + strings.Join(e.Fields, ", ")
}

// Struct valida s pelas tags `validate`. Devolve *Error quando algum campo falha.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		field := fieldPath(fe)
		if fe.Tag() == "required" {
			out.Fields = append(out.Fields, field)
			continue
		}
		out.Fields = append(out.Fields, field+":"+fe.Tag())
	}
	return out
}

// Email indica se o texto tem forma de e-mail.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// fieldPath remove o nome da struct raiz: "CreateLoteRequest.itens[0].quantidade" -> "itens[0].quantidade".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
