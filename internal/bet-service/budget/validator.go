package budget

import "errors"

var (
	ErrInvalidStake       = errors.New("invalid stake")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrBetCapExceeded     = errors.New("bet cap exceeded")
	ErrEmptyBatch         = errors.New("empty batch")
)

// Rules valida um lote de apostas contra o orçamento semanal do usuário.
// MaxBetsPerMatchday = 0 desativa o limite de apostas por jornada.
type Rules struct {
	MaxBetsPerMatchday int
}

// Validate aplica as regras de aceitação do lote: todo stake > 0, soma dos
// stakes dentro do orçamento corrente e contagem de apostas (pendentes +
// novas) dentro do limite por jornada. Retorna o total apostado em centavos.
func (r Rules) Validate(stakesCents []int64, budgetCents int64, pendingCount int) (int64, error) {
	if len(stakesCents) == 0 {
		return 0, ErrEmptyBatch
	}

	var total int64
	for _, s := range stakesCents {
		if s <= 0 {
			return 0, ErrInvalidStake
		}
		total += s
	}

	if total > budgetCents {
		return 0, ErrInsufficientBudget
	}

	if r.MaxBetsPerMatchday > 0 && pendingCount+len(stakesCents) > r.MaxBetsPerMatchday {
		return 0, ErrBetCapExceeded
	}

	return total, nil
}
