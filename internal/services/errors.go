package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("registro não encontrado")
	ErrInvalidPassword     = errors.New("senha inválida")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrInvalidState        = errors.New("transição de etapa inválida")
	ErrDuplicate           = errors.New("registro duplicado")
	ErrInvalidRecoveryCode = errors.New("código de recuperação inválido ou expirado")
	ErrLinkInactive        = errors.New("link expirado ou revogado")
	ErrFichaUnavailable    = errors.New("ficha não disponível para este imóvel")
)
