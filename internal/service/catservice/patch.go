package catservice

import (
	"encoding/json"
	"strings"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
)

// catSetters mapeia cada chave reconhecida do corpo de atualização para uma função
// tipada que aplica o valor na entidade. Chaves fora desta tabela são ignoradas
// silenciosamente, strings são trimadas antes da atribuição e valores não-string
// são atribuídos como estão (respeitando o tipo do campo).
var catSetters = map[string]func(cat *domain.Cat, raw json.RawMessage) error{
	"name": func(cat *domain.Cat, raw json.RawMessage) error {
		value, err := decodeTrimmedString(raw, "name")
		if err != nil {
			return err
		}
		// Campo obrigatório: nunca pode ficar vazio em um registro persistido
		if value == "" {
			return apperror.NewValidationError("Field name must not be empty")
		}
		cat.Name = value
		return nil
	},
	"short_description": func(cat *domain.Cat, raw json.RawMessage) error {
		value, err := decodeTrimmedString(raw, "short_description")
		if err != nil {
			return err
		}
		if value == "" {
			return apperror.NewValidationError("Field short_description must not be empty")
		}
		cat.ShortDescription = value
		return nil
	},
	"long_description": func(cat *domain.Cat, raw json.RawMessage) error {
		value, err := decodeNullableString(raw, "long_description")
		if err != nil {
			return err
		}
		cat.LongDescription = value
		return nil
	},
	"age": func(cat *domain.Cat, raw json.RawMessage) error {
		value, err := decodeNullableFreeform(raw, "age")
		if err != nil {
			return err
		}
		cat.Age = value
		return nil
	},
	"is_vaccinated": func(cat *domain.Cat, raw json.RawMessage) error {
		var value bool
		if err := json.Unmarshal(raw, &value); err != nil {
			return apperror.NewValidationError("Field is_vaccinated must be a boolean")
		}
		cat.IsVaccinated = value
		return nil
	},
	"img": func(cat *domain.Cat, raw json.RawMessage) error {
		value, err := decodeNullableString(raw, "img")
		if err != nil {
			return err
		}
		cat.Img = value
		return nil
	},
}

// applyPatch percorre o corpo bruto e aplica cada chave reconhecida na entidade.
// Aceita qualquer subconjunto de campos; nenhuma validação de schema é aplicada
// além das regras por campo acima.
func applyPatch(cat *domain.Cat, patch domain.CatPatch) error {
	for key, raw := range patch {
		setter, ok := catSetters[key]
		if !ok {
			// Chave desconhecida: ignorada silenciosamente
			continue
		}
		if err := setter(cat, raw); err != nil {
			return err
		}
	}
	return nil
}

// decodeTrimmedString decodifica uma string JSON e aplica trim.
func decodeTrimmedString(raw json.RawMessage, field string) (string, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", apperror.NewValidationError("Field " + field + " must be a string")
	}
	return strings.TrimSpace(value), nil
}

// decodeNullableString decodifica uma string opcional: null JSON ou string vazia
// após trim viram NULL no banco.
func decodeNullableString(raw json.RawMessage, field string) (*string, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	value, err := decodeTrimmedString(raw, field)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return &value, nil
}

// decodeNullableFreeform aceita string ou número JSON para o campo age.
func decodeNullableFreeform(raw json.RawMessage, field string) (*string, error) {
	if string(raw) == "null" {
		return nil, nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		formatted := num.String()
		return &formatted, nil
	}

	return decodeNullableString(raw, field)
}
