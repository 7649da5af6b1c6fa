package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"` // campos obrigatórios ausentes (VALIDATION)
}

// PageResponse metadados de página nas listagens.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DateLayout formato das datas trafegadas na API.
const DateLayout = "2006-01-02"
