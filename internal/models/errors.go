package models

// FieldError: erro de validação ligado a um campo específico.
// O handler converte para resposta 400 com o nome do campo.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
