package presenter

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-board/internal/board"
)

// Tone é a cor semântica que o front aplica a valores de P&L e resultados.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// Odds formata odds decimais com duas casas.
func Odds(d decimal.Decimal) string { return d.StringFixed(2) }

// Money formata um valor monetário sem sinal explícito, ex: "$10.00".
func Money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

// Stake formata o stake de um resumo; grupos com mais de uma aposta recebem o sufixo "total".
func Stake(s board.GroupSummary) string {
	if s.IsTotal() {
		return Money(s.TotalStake) + " total"
	}
	return Money(s.TotalStake)
}

// ProfitLoss formata P&L com sinal: "+$12.50", "-$10.00" ou "$0.00".
func ProfitLoss(d decimal.Decimal) string {
	switch d.Sign() {
	case 1:
		return "+" + Money(d)
	case -1:
		return "-" + Money(d.Abs())
	default:
		return Money(d)
	}
}

func ToneOf(d decimal.Decimal) Tone {
	switch d.Sign() {
	case 1:
		return TonePositive
	case -1:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

func outcomeTone(o board.Outcome) Tone {
	if o == board.OutcomeWon {
		return TonePositive
	}
	return ToneNegative
}

// SplitDateTime separa data ("3/14/2025") e hora ("7:30 PM") no fuso do próprio valor.
func SplitDateTime(t time.Time) (date, clock string) {
	return t.Format("1/2/2006"), t.Format("3:04 PM")
}
