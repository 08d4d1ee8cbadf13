package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de relatórios
var (
	// Erros de validação
	ErrInvalidReportType = errors.New("tipo de relatório inválido")
	ErrInvalidGroupBy    = errors.New("agrupamento inválido")
	ErrInvalidPeriod     = errors.New("período inválido")
	ErrMissingClinic     = errors.New("clínica não informada")

	// Erros de banco de dados
	ErrFetchRecords     = errors.New("erro ao buscar registros do relatório")
	ErrSnapshotNotFound = errors.New("snapshot mensal não encontrado")
	ErrSaveSnapshot     = errors.New("erro ao gravar snapshot mensal")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClinicID string // Clínica envolvida (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewClinicReportError(err error, code string, clinicID string, details string) *ReportError {
	return &ReportError{
		Err:      err,
		Code:     code,
		ClinicID: clinicID,
		Details:  details,
	}
}

// IsValidationError indica erros causados pelos parâmetros da requisição
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidReportType) ||
		errors.Is(err, ErrInvalidGroupBy) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrMissingClinic)
}
