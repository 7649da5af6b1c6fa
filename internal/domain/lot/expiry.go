// Package lot contém as regras puras sobre lotes: validade, urgência e agrupamentos.
package lot

import (
	"math"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// HorizonDays janela de "próximo ao vencimento".
const HorizonDays = 30

// Urgency classificação do lote pelo número de dias até o vencimento.
type Urgency string

const (
	UrgencyCritical Urgency = "critico" // <= 15 dias
	UrgencyWarning  Urgency = "atencao" // 16 a 29 dias
	UrgencySafe     Urgency = "seguro"  // >= 30 dias
)

// DaysRemaining teto de (validade - agora) em dias inteiros. Negativo quando já venceu.
func DaysRemaining(expiry, now time.Time) int {
	days := math.Ceil(expiry.Sub(now).Hours() / 24)
	return int(days)
}

// InHorizon indica se a validade cai até agora + 30 dias (inclusive).
func InHorizon(expiry, now time.Time) bool {
	return !expiry.After(now.AddDate(0, 0, HorizonDays))
}

// Classify aplica os limites de urgência. 30 dias é ao mesmo tempo o limite de inclusão
// em NearExpiry e o piso de "seguro": esse lote aparece na lista classificado como seguro.
func Classify(days int) Urgency {
	switch {
	case days <= 15:
		return UrgencyCritical
	case days < HorizonDays:
		return UrgencyWarning
	default:
		return UrgencySafe
	}
}

// ExpiringLot entrada do relatório de vencimento.
type ExpiringLot struct {
	Lote          entity.LoteProducao
	DiasRestantes int
	Urgencia      Urgency
}

// NearExpiry filtra os lotes ativos dentro do horizonte, na ordem recebida.
func NearExpiry(lotes []entity.LoteProducao, now time.Time) []ExpiringLot {
	out := make([]ExpiringLot, 0)
	for _, l := range lotes {
		if !l.Ativo() || !InHorizon(l.DataValidade, now) {
			continue
		}
		days := DaysRemaining(l.DataValidade, now)
		out = append(out, ExpiringLot{Lote: l, DiasRestantes: days, Urgencia: Classify(days)})
	}
	return out
}
