package board

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator registra dpos (decimal estritamente positivo, comparado pelo sinal, sem passar por float64)
// e reporta os campos pelo nome JSON.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dpos", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.Sign() > 0
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError descreve um registro rejeitado. O registro fica fora da saída,
// mas o processamento dos demais continua.
type ValidationError struct {
	Index  int      // posição no snapshot de entrada
	ID     string   // pode ser vazio quando o próprio id é inválido
	Fields []string // ex: "matchId: required", "stake: dpos"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record %q at index %d: %s", e.ID, e.Index, strings.Join(e.Fields, ", "))
}

// DuplicateIDError indica um id repetido. Vale a primeira ocorrência; a repetida é descartada
// sem somar stakes.
type DuplicateIDError struct {
	ID       string
	Index    int
	FirstIdx int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate record id %q at index %d (first seen at %d)", e.ID, e.Index, e.FirstIdx)
}

// MatchConflict aponta uma aposta cujos campos de partida divergem do primeiro membro do grupo.
// Não exclui o registro; o grupo mantém os valores do primeiro membro.
type MatchConflict struct {
	MatchID string `json:"matchId"`
	BetID   string `json:"betId"`
}

// Report acumula os problemas encontrados em um snapshot. Nenhum deles é fatal.
type Report struct {
	Invalid    []*ValidationError
	Duplicates []*DuplicateIDError
	Conflicts  []MatchConflict
}

func (r Report) Empty() bool {
	return len(r.Invalid) == 0 && len(r.Duplicates) == 0 && len(r.Conflicts) == 0
}

// InvalidIDs retorna os ids dos registros rejeitados, na ordem de entrada.
func (r Report) InvalidIDs() []string {
	out := make([]string, 0, len(r.Invalid))
	for _, e := range r.Invalid {
		out = append(out, e.ID)
	}
	return out
}

func (r Report) DuplicateIDs() []string {
	out := make([]string, 0, len(r.Duplicates))
	for _, e := range r.Duplicates {
		out = append(out, e.ID)
	}
	return out
}

// Err junta os erros de validação e de duplicidade; nil quando não houve nenhum.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Invalid)+len(r.Duplicates))
	for _, e := range r.Invalid {
		errs = append(errs, e)
	}
	for _, e := range r.Duplicates {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// ValidateBets filtra o snapshot de apostas. Os ponteiros retornados apontam para o próprio slice de entrada.
func ValidateBets(records []BetRecord) ([]*BetRecord, Report) {
	return check(records, func(b *BetRecord) string { return b.ID })
}

// ValidateResults aplica a mesma política ao ledger de resultados.
func ValidateResults(results []Result) ([]*Result, Report) {
	return check(results, func(r *Result) string { return r.ID })
}

// check valida cada item e descarta ids repetidos.
// Um registro inválido não reserva o id: a primeira ocorrência válida é a que fica.
func check[T any](items []T, id func(*T) string) ([]*T, Report) {
	var rep Report
	out := make([]*T, 0, len(items))
	seen := make(map[string]int, len(items))

	for i := range items {
		it := &items[i]
		if fields := fieldErrors(it); len(fields) > 0 {
			rep.Invalid = append(rep.Invalid, &ValidationError{Index: i, ID: id(it), Fields: fields})
			continue
		}
		if first, ok := seen[id(it)]; ok {
			rep.Duplicates = append(rep.Duplicates, &DuplicateIDError{ID: id(it), Index: i, FirstIdx: first})
			continue
		}
		seen[id(it)] = i
		out = append(out, it)
	}
	return out, rep
}

func fieldErrors(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field()+": "+fe.Tag())
	}
	return out
}
