package validate

import (
	"strings"

	apperror "catadopt/internal/errors"
)

// Body aplica validação estrita de schema sobre um corpo de requisição já decodificado:
// rejeita tanto chaves obrigatórias ausentes quanto qualquer chave fora do conjunto
// esperado. Campos listados em requiredFields não podem estar vazios (após trim).
//
// É uma função pura, sem efeitos colaterais; compartilhada pelos fluxos de escrita.
// Retorna nil quando o corpo é válido; o mapa original é devolvido intocado ao chamador
// (sem trim), pois a normalização é responsabilidade do serviço.
func Body(data map[string]interface{}, expectedFields, requiredFields []string) error {
	if len(data) == 0 {
		return apperror.NewValidationError("No data provided")
	}

	// Chaves esperadas ausentes (na ordem declarada, para mensagens estáveis)
	var missing []string
	for _, field := range expectedFields {
		if _, ok := data[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apperror.NewValidationError("Missing expected fields: " + strings.Join(missing, ", "))
	}

	// Qualquer chave fora do conjunto esperado rejeita o corpo inteiro
	expected := make(map[string]struct{}, len(expectedFields))
	for _, field := range expectedFields {
		expected[field] = struct{}{}
	}
	for key := range data {
		if _, ok := expected[key]; !ok {
			return apperror.NewValidationError("More fields than expected")
		}
	}

	// Campos obrigatórios não podem ser nulos nem vazios após trim
	for _, field := range requiredFields {
		switch v := data[field].(type) {
		case nil:
			return apperror.NewValidationError("Field " + field + " must not be empty")
		case string:
			if strings.TrimSpace(v) == "" {
				return apperror.NewValidationError("Field " + field + " must not be empty")
			}
		}
	}

	return nil
}
